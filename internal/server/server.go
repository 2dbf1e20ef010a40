// Package server wires the storefront together and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/tindahan/app/controllers"
	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/app/routes"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/config"
	"github.com/shashiranjanraj/tindahan/pkg/cache"
	"github.com/shashiranjanraj/tindahan/pkg/database"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
	"github.com/shashiranjanraj/tindahan/pkg/logger"
	"github.com/shashiranjanraj/tindahan/pkg/metrics"
	"github.com/shashiranjanraj/tindahan/pkg/middleware"
	"github.com/shashiranjanraj/tindahan/pkg/reqid"
	"github.com/shashiranjanraj/tindahan/pkg/router"
	"github.com/shashiranjanraj/tindahan/pkg/ws"
)

// Build constructs the router with every dependency wired. Exposed
// separately from Run so tests and the route:list command can inspect
// the route table without starting a listener.
func Build() (*router.Router, *ws.Hub, error) {
	store, err := kv.Open()
	if err != nil {
		return nil, nil, err
	}

	products := repositories.NewProductRepository()
	orders := repositories.NewOrderRepository(store)

	catalog := services.NewCatalogService()
	ledger := services.NewCartLedger(store)
	checkout := services.NewCheckoutService(ledger, orders)

	hub := ws.NewHub()
	ledger.Subscribe(hub.NotifyCartUpdated)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	routes.RegisterAPI(r,
		controllers.NewCatalogController(products, catalog),
		controllers.NewCartController(ledger, products),
		controllers.NewCheckoutController(checkout, orders),
		hub,
	)

	r.HandleFunc("/metrics", metrics.Handler())

	return r, hub, nil
}

// Run boots the storefront and blocks until the process is signalled.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	r, hub, err := Build()
	if err != nil {
		return err
	}
	go hub.Run()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Package routes declares the HTTP surface of the storefront.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/tindahan/app/controllers"
	"github.com/shashiranjanraj/tindahan/pkg/router"
	"github.com/shashiranjanraj/tindahan/pkg/ws"
)

// RegisterAPI mounts every storefront route on r.
func RegisterAPI(r *router.Router, catalog *controllers.CatalogController, cart *controllers.CartController, checkout *controllers.CheckoutController, hub *ws.Hub) {
	api := r.Group("/api")

	api.Get("/products", "products.index", catalog.Index)
	api.Get("/products/{id}", "products.show", catalog.Show)

	api.Get("/cart", "cart.show", cart.Show)
	api.Post("/cart/items", "cart.items.add", cart.AddItem)
	api.Patch("/cart/items/{id}", "cart.items.update", cart.UpdateItem)
	api.Delete("/cart/items/{id}", "cart.items.remove", cart.RemoveItem)
	api.Delete("/cart", "cart.clear", cart.Clear)

	api.Post("/checkout", "checkout.create", checkout.Create)
	api.Get("/orders", "orders.index", checkout.Index)

	r.Get("/ws/cart", "ws.cart", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})
}

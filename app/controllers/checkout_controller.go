package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/pkg/logger"
	"github.com/shashiranjanraj/tindahan/pkg/response"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	orders   *repositories.OrderRepository
}

func NewCheckoutController(checkout *services.CheckoutService, orders *repositories.OrderRepository) *CheckoutController {
	return &CheckoutController{checkout: checkout, orders: orders}
}

// Create places an order from the current cart:
//
//	POST /api/checkout  {"first_name": ..., "email": ..., ...}
//
// The order is recorded before the cart is cleared. If clearing fails
// the order still stands; the stale cart is logged and the client gets
// the order back.
func (c *CheckoutController) Create(w http.ResponseWriter, r *http.Request) {
	var shipping models.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&shipping); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := c.checkout.PlaceOrder(shipping)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
		return
	case errors.Is(err, services.ErrEmptyCart):
		response.Error(w, http.StatusUnprocessableEntity, "Cart is empty")
		return
	case errors.Is(err, services.ErrCartNotCleared):
		logger.WithCtx(r.Context()).Warn("checkout: order placed but cart not cleared", "order_id", order.ID, "error", err)
	case err != nil:
		logger.WithCtx(r.Context()).Error("checkout: place order", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not place order")
		return
	}

	response.Created(w, order)
}

// Index lists all recorded orders, oldest first.
func (c *CheckoutController) Index(w http.ResponseWriter, r *http.Request) {
	orders := c.orders.All()
	if orders == nil {
		orders = []models.Order{}
	}
	response.Success(w, orders)
}

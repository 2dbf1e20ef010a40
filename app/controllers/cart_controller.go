package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/pkg/logger"
	"github.com/shashiranjanraj/tindahan/pkg/response"
)

// CartController is the HTTP boundary of the cart ledger. Input policy
// lives here, not in the ledger: quantities are clamped to ≥ 1 and
// out-of-stock products are refused before the ledger is touched.
type CartController struct {
	ledger   *services.CartLedger
	products ProductSource
}

func NewCartController(ledger *services.CartLedger, products ProductSource) *CartController {
	return &CartController{ledger: ledger, products: products}
}

// cartView is the JSON shape every cart endpoint responds with.
type cartView struct {
	Items []models.CartItem `json:"items"`
	Total string            `json:"total"`
}

func (c *CartController) view() cartView {
	items := c.ledger.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return cartView{Items: items, Total: c.ledger.Total().StringFixed(2)}
}

// Show returns the current line items and total.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.view())
}

// AddItem puts a product in the cart:
//
//	POST /api/cart/items  {"product_id": 3, "quantity": 2}
//
// A quantity below 1 is clamped to 1. Products with zero stock are
// refused here — the storefront disables their add button, and the API
// enforces the same policy.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.Quantity < 1 {
		body.Quantity = 1
	}

	product, err := c.products.FindByID(body.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(w, http.StatusNotFound, "Unknown product")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart: find product", "id", body.ProductID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	if !product.InStock() {
		response.Error(w, http.StatusUnprocessableEntity, "Product is out of stock")
		return
	}

	if err := c.ledger.Add(product, body.Quantity); err != nil {
		logger.WithCtx(r.Context()).Error("cart: persist add", "error", err)
	}

	response.Created(w, c.view())
}

// UpdateItem sets the quantity of one line:
//
//	PATCH /api/cart/items/{id}  {"quantity": 3}
//
// Quantities below 1 clamp to 1; an id with no line item is a no-op.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.ledger.UpdateQuantity(uint(id), body.Quantity); err != nil {
		logger.WithCtx(r.Context()).Error("cart: persist update", "error", err)
	}

	response.Success(w, c.view())
}

// RemoveItem deletes one line from the cart.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := c.ledger.Remove(uint(id)); err != nil {
		logger.WithCtx(r.Context()).Error("cart: persist remove", "error", err)
	}

	response.Success(w, c.view())
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.ledger.Clear(); err != nil {
		logger.WithCtx(r.Context()).Error("cart: persist clear", "error", err)
	}

	response.Success(w, c.view())
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/pkg/logger"
	"github.com/shashiranjanraj/tindahan/pkg/response"
)

// ProductSource is the catalogue read surface controllers depend on.
// Satisfied by repositories.ProductRepository.
type ProductSource interface {
	All() ([]models.Product, error)
	FindByID(id uint) (models.Product, error)
}

// CatalogController serves the browsable product catalogue.
type CatalogController struct {
	products ProductSource
	catalog  *services.CatalogService
}

func NewCatalogController(products ProductSource, catalog *services.CatalogService) *CatalogController {
	return &CatalogController{products: products, catalog: catalog}
}

// Index returns the catalogue filtered and sorted by the query string:
//
//	GET /api/products?search=mug&min_price=50&max_price=500&in_stock=true&sort=price-low
//
// Absent parameters keep their defaults (everything, most popular first).
// An unrecognised sort key falls back to popularity-high.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	criteria, ok := parseCriteria(w, r)
	if !ok {
		return
	}

	products, err := c.products.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("catalog: load products", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load catalogue")
		return
	}

	response.Success(w, c.catalog.Apply(products, criteria))
}

// Show returns a single product, for the detail view.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := c.products.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("catalog: find product", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	response.Success(w, product)
}

// parseCriteria builds filter criteria from the query string. A max price
// below the min is lifted to the min rather than rejected, mirroring how
// the price inputs clamp each other in the storefront UI.
func parseCriteria(w http.ResponseWriter, r *http.Request) (services.Criteria, bool) {
	criteria := services.DefaultCriteria()
	q := r.URL.Query()

	criteria.Search = q.Get("search")

	if v := q.Get("min_price"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil || min.IsNegative() {
			response.Error(w, http.StatusBadRequest, "Invalid min_price")
			return criteria, false
		}
		criteria.MinPrice = min
	}

	if v := q.Get("max_price"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil || max.IsNegative() {
			response.Error(w, http.StatusBadRequest, "Invalid max_price")
			return criteria, false
		}
		criteria.MaxPrice = decimal.NewNullDecimal(max)
	}

	// An absent max_price means no upper bound.
	if criteria.MaxPrice.Valid && criteria.MaxPrice.Decimal.LessThan(criteria.MinPrice) {
		criteria.MaxPrice = decimal.NewNullDecimal(criteria.MinPrice)
	}

	if v := q.Get("in_stock"); v == "true" || v == "1" {
		criteria.InStockOnly = true
	}

	if v := q.Get("sort"); v != "" {
		criteria.SortBy = services.SortKey(v)
	}

	return criteria, true
}

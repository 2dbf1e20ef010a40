package controllers_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tindahan/app/controllers"
	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/app/routes"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
	"github.com/shashiranjanraj/tindahan/pkg/router"
	"github.com/shashiranjanraj/tindahan/pkg/testkit"
	"github.com/shashiranjanraj/tindahan/pkg/ws"
)

// fakeProducts serves a fixed catalogue, standing in for the DB-backed
// repository.
type fakeProducts struct {
	products []models.Product
}

func (f *fakeProducts) All() ([]models.Product, error) {
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeProducts) FindByID(id uint) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixtures() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Classic Cotton Tee", Description: "plain shirt", Price: price("499.00"), Currency: "PHP", Rating: 4.6, NumberOfBuys: 1820, Stock: 42},
		{ID: 2, Name: "Capiz Shell Lamp", Description: "table lamp", Price: price("2780.00"), Currency: "PHP", Rating: 4.4, NumberOfBuys: 97, Stock: 0},
		{ID: 3, Name: "Barako Coffee Beans", Description: "dark roast", Price: price("425.00"), Currency: "PHP", Rating: 4.5, NumberOfBuys: 3102, Stock: 200},
	}
}

// harness is the full API surface over in-memory state.
type harness struct {
	handler http.Handler
	ledger  *services.CartLedger
	store   kv.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := kv.NewMemoryStore()
	products := &fakeProducts{products: fixtures()}
	orders := repositories.NewOrderRepository(store)
	ledger := services.NewCartLedger(store)
	checkout := services.NewCheckoutService(ledger, orders)

	r := router.New()
	routes.RegisterAPI(r,
		controllers.NewCatalogController(products, services.NewCatalogService()),
		controllers.NewCartController(ledger, products),
		controllers.NewCheckoutController(checkout, orders),
		ws.NewHub(),
	)

	return &harness{handler: r.Handler(), ledger: ledger, store: store}
}

type cartView struct {
	Items []models.CartItem `json:"items"`
	Total string            `json:"total"`
}

// ─── Catalogue ────────────────────────────────────────────────────────────────

func TestProductsIndexDefaultOrder(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodGet, "/api/products", nil)

	var got []models.Product
	testkit.DecodeData(t, rec, http.StatusOK, &got)
	require.Len(t, got, 3)
	assert.Equal(t, uint(3), got[0].ID) // most bought first
	assert.Equal(t, uint(1), got[1].ID)
	assert.Equal(t, uint(2), got[2].ID)
}

func TestProductsIndexFiltered(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodGet,
		"/api/products?in_stock=true&max_price=500&sort=price-low", nil)

	var got []models.Product
	testkit.DecodeData(t, rec, http.StatusOK, &got)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID) // 425.00
	assert.Equal(t, uint(1), got[1].ID) // 499.00
}

func TestProductsIndexRejectsBadPrice(t *testing.T) {
	h := newHarness(t)

	for _, query := range []string{"min_price=abc", "min_price=-5", "max_price=1,000"} {
		rec := testkit.Do(t, h.handler, http.MethodGet, "/api/products?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestProductsShow(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodGet, "/api/products/1", nil)
	var got models.Product
	testkit.DecodeData(t, rec, http.StatusOK, &got)
	assert.Equal(t, "Classic Cotton Tee", got.Name)

	rec = testkit.Do(t, h.handler, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.Do(t, h.handler, http.MethodGet, "/api/products/banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─── Cart ─────────────────────────────────────────────────────────────────────

func TestCartLifecycle(t *testing.T) {
	h := newHarness(t)

	// Empty cart.
	rec := testkit.Do(t, h.handler, http.MethodGet, "/api/cart", nil)
	var view cartView
	testkit.DecodeData(t, rec, http.StatusOK, &view)
	assert.Empty(t, view.Items)
	assert.Equal(t, "0.00", view.Total)

	// Add twice — quantities merge.
	body := map[string]interface{}{"product_id": 1, "quantity": 2}
	rec = testkit.Do(t, h.handler, http.MethodPost, "/api/cart/items", body)
	testkit.DecodeData(t, rec, http.StatusCreated, &view)

	rec = testkit.Do(t, h.handler, http.MethodPost, "/api/cart/items", body)
	testkit.DecodeData(t, rec, http.StatusCreated, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.Equal(t, "1996.00", view.Total)

	// Update clamps below one.
	rec = testkit.Do(t, h.handler, http.MethodPatch, "/api/cart/items/1",
		map[string]interface{}{"quantity": 0})
	testkit.DecodeData(t, rec, http.StatusOK, &view)
	assert.Equal(t, 1, view.Items[0].Quantity)

	// Remove the line.
	rec = testkit.Do(t, h.handler, http.MethodDelete, "/api/cart/items/1", nil)
	testkit.DecodeData(t, rec, http.StatusOK, &view)
	assert.Empty(t, view.Items)
}

func TestCartClear(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ledger.Add(fixtures()[0], 2))

	rec := testkit.Do(t, h.handler, http.MethodDelete, "/api/cart", nil)

	var view cartView
	testkit.DecodeData(t, rec, http.StatusOK, &view)
	assert.Empty(t, view.Items)
	assert.Empty(t, h.ledger.Items())
}

func TestCartAddUnknownProduct(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/cart/items",
		map[string]interface{}{"product_id": 404, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddOutOfStockRefused(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/cart/items",
		map[string]interface{}{"product_id": 2, "quantity": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, h.ledger.Items())
}

func TestCartAddClampsQuantity(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/cart/items",
		map[string]interface{}{"product_id": 1, "quantity": -3})

	var view cartView
	testkit.DecodeData(t, rec, http.StatusCreated, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

// ─── Checkout ─────────────────────────────────────────────────────────────────

func shippingBody() map[string]interface{} {
	return map[string]interface{}{
		"first_name":  "Maria",
		"last_name":   "Santos",
		"email":       "maria@example.com",
		"phone":       "09171234567",
		"address":     "123 Mabini St",
		"city":        "Quezon City",
		"postal_code": "1100",
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ledger.Add(fixtures()[0], 2))

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/checkout", shippingBody())

	var order models.Order
	testkit.DecodeData(t, rec, http.StatusCreated, &order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Empty(t, h.ledger.Items())

	// The order shows up in the history endpoint.
	rec = testkit.Do(t, h.handler, http.MethodGet, "/api/orders", nil)
	var history []models.Order
	testkit.DecodeData(t, rec, http.StatusOK, &history)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/checkout", shippingBody())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutValidationErrors(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ledger.Add(fixtures()[0], 1))

	body := shippingBody()
	delete(body, "first_name")
	body["email"] = "not-an-email"

	rec := testkit.Do(t, h.handler, http.MethodPost, "/api/checkout", body)

	fields := testkit.FieldErrors(t, rec)
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "email")

	// Cart untouched.
	assert.Len(t, h.ledger.Items(), 1)
}

func TestOrdersIndexEmpty(t *testing.T) {
	h := newHarness(t)

	rec := testkit.Do(t, h.handler, http.MethodGet, "/api/orders", nil)
	var history []models.Order
	testkit.DecodeData(t, rec, http.StatusOK, &history)
	assert.Empty(t, history)
}

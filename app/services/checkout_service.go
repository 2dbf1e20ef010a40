package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/pkg/metrics"
	"github.com/shashiranjanraj/tindahan/pkg/validate"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ErrCartNotCleared reports the half-done checkout state: the order was
// recorded in the history, but the cart-clear write failed afterwards.
// The order stands; the caller decides how to surface the stale cart.
var ErrCartNotCleared = errors.New("checkout: order placed but cart not cleared")

// ValidationError carries the per-field messages for rejected shipping input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "checkout: invalid shipping info: " + strings.Join(keys, ", ")
}

// CheckoutService turns the current cart into a pending order.
type CheckoutService struct {
	ledger *CartLedger
	orders *repositories.OrderRepository
}

func NewCheckoutService(ledger *CartLedger, orders *repositories.OrderRepository) *CheckoutService {
	return &CheckoutService{ledger: ledger, orders: orders}
}

// PlaceOrder validates shipping, snapshots the cart into a new pending
// order, appends it to the order history, then deducts the ordered
// quantities from the cart.
//
// The two writes are not one transaction. History is written first so a
// failure before it leaves no partial order; if the cart write fails
// afterwards the order is returned together with ErrCartNotCleared instead
// of being rolled back. Items and total come from one Snapshot, and the
// deduction removes only what was ordered, so a line another request adds
// mid-checkout stays in the cart rather than being wiped.
func (s *CheckoutService) PlaceOrder(shipping models.ShippingInfo) (models.Order, error) {
	items, total := s.ledger.Snapshot()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	if errs := validate.Struct(&shipping); validate.HasErrors(errs) {
		return models.Order{}, &ValidationError{Fields: errs}
	}

	now := time.Now()
	order := models.Order{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Items:     items,
		Total:     total,
		Status:    models.OrderStatusPending,
		Customer:  shipping,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Append(order); err != nil {
		return models.Order{}, fmt.Errorf("checkout: record order: %w", err)
	}
	metrics.OrdersPlaced.Inc()

	if err := s.ledger.Deduct(order.Items); err != nil {
		return order, fmt.Errorf("%w: %v", ErrCartNotCleared, err)
	}

	return order, nil
}

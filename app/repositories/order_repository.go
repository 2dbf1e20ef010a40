package repositories

import (
	"fmt"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
)

// ordersKey is the durable-store key the whole history is serialised under.
const ordersKey = "orders"

// OrderRepository is the append-only order history. Orders are appended at
// checkout and never mutated; the whole history is one JSON value in the
// durable store, rewritten on every append.
type OrderRepository struct {
	store kv.Store
}

func NewOrderRepository(store kv.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// All returns every recorded order, oldest first. A missing or malformed
// stored value means an empty history.
func (r *OrderRepository) All() []models.Order {
	var orders []models.Order
	kv.ReadJSON(r.store, ordersKey, &orders)
	return orders
}

// Append adds order to the end of the history.
func (r *OrderRepository) Append(order models.Order) error {
	orders := append(r.All(), order)
	if err := kv.WriteJSON(r.store, ordersKey, orders); err != nil {
		return fmt.Errorf("orders: append %s: %w", order.ID, err)
	}
	return nil
}

package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/pkg/collection"
	"github.com/shashiranjanraj/tindahan/pkg/event"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
	"github.com/shashiranjanraj/tindahan/pkg/metrics"
)

// cartKey is the durable-store key the whole ledger is serialised under.
const cartKey = "cart"

// CartLedger is the list of cart line items, keyed by product ID. One
// ledger exists per process; every component that touches the cart holds
// the same instance.
//
// Every mutation rewrites the full ledger to the injected store and then
// notifies observers. Observers get no payload — they re-read whatever
// cart state they render.
type CartLedger struct {
	mu    sync.Mutex
	store kv.Store
	bus   *event.Bus
	items []models.CartItem
}

// NewCartLedger builds a ledger on top of store and loads whatever it
// currently holds. A missing or malformed stored value means an empty
// cart — stored state is never trusted and never surfaces a parse error.
func NewCartLedger(store kv.Store) *CartLedger {
	l := &CartLedger{store: store, bus: event.NewBus()}

	var items []models.CartItem
	kv.ReadJSON(store, cartKey, &items)
	l.items = items

	metrics.CartItems.Set(float64(len(items)))
	return l
}

// Subscribe registers an observer called after every mutation.
// Returns a token for Unsubscribe.
func (l *CartLedger) Subscribe(fn func()) int { return l.bus.Subscribe(fn) }

// Unsubscribe removes a previously registered observer.
func (l *CartLedger) Unsubscribe(id int) { l.bus.Unsubscribe(id) }

// Items returns a copy of the current line items in insertion order.
func (l *CartLedger) Items() []models.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.CartItem(nil), l.items...)
}

// Snapshot returns the line items and their total as one consistent view,
// taken under a single lock hold. Checkout builds orders from this, so the
// recorded total always equals the sum of the recorded lines even while
// other requests mutate the ledger.
func (l *CartLedger) Snapshot() ([]models.CartItem, decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := append([]models.CartItem(nil), l.items...)
	total := collection.Reduce(items, decimal.Zero,
		func(sum decimal.Decimal, item models.CartItem) decimal.Decimal {
			return sum.Add(item.Subtotal())
		})
	return items, total
}

// Total is the sum of price × quantity over all line items.
func (l *CartLedger) Total() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return collection.Reduce(l.items, decimal.Zero,
		func(sum decimal.Decimal, item models.CartItem) decimal.Decimal {
			return sum.Add(item.Subtotal())
		})
}

// Add merges quantity into the existing line for product.ID, or appends a
// new line carrying a snapshot of the product's name, price and currency.
// Callers are responsible for supplying quantity ≥ 1 and for refusing
// out-of-stock products; the ledger itself has no relationship to stock.
func (l *CartLedger) Add(product models.Product, quantity int) error {
	l.mu.Lock()

	merged := false
	for i := range l.items {
		if l.items[i].ProductID == product.ID {
			l.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		l.items = append(l.items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Currency:  product.Currency,
			Quantity:  quantity,
		})
	}

	err := l.persistLocked()
	l.mu.Unlock()

	metrics.CartMutations.WithLabelValues("add").Inc()
	l.bus.Publish()
	return err
}

// UpdateQuantity sets the quantity of the line for productID, flooring at 1
// — dropping below 1 clamps, it never removes the line. A productID with no
// line is a no-op.
func (l *CartLedger) UpdateQuantity(productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()

	found := false
	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		l.mu.Unlock()
		return nil
	}

	err := l.persistLocked()
	l.mu.Unlock()

	metrics.CartMutations.WithLabelValues("update").Inc()
	l.bus.Publish()
	return err
}

// Remove deletes the line for productID if present; no-op otherwise.
func (l *CartLedger) Remove(productID uint) error {
	l.mu.Lock()

	kept := collection.Filter(l.items, func(item models.CartItem) bool {
		return item.ProductID != productID
	})
	if len(kept) == len(l.items) {
		l.mu.Unlock()
		return nil
	}
	l.items = kept

	err := l.persistLocked()
	l.mu.Unlock()

	metrics.CartMutations.WithLabelValues("remove").Inc()
	l.bus.Publish()
	return err
}

// Deduct subtracts the given quantities from the ledger, line by line:
// each item's quantity comes off the matching line and lines that reach
// zero are dropped. Lines or quantity added after the snapshot was taken
// survive. Checkout calls this instead of Clear so a concurrent add
// between the order write and the cart write is never destroyed.
func (l *CartLedger) Deduct(items []models.CartItem) error {
	l.mu.Lock()

	ordered := make(map[uint]int, len(items))
	for _, item := range items {
		ordered[item.ProductID] += item.Quantity
	}

	kept := l.items[:0:0]
	for _, line := range l.items {
		line.Quantity -= ordered[line.ProductID]
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	l.items = kept

	err := l.persistLocked()
	l.mu.Unlock()

	metrics.CartMutations.WithLabelValues("deduct").Inc()
	l.bus.Publish()
	return err
}

// Clear empties the ledger unconditionally.
func (l *CartLedger) Clear() error {
	l.mu.Lock()
	l.items = nil
	err := l.persistLocked()
	l.mu.Unlock()

	metrics.CartMutations.WithLabelValues("clear").Inc()
	l.bus.Publish()
	return err
}

// persistLocked rewrites the whole ledger. Caller holds l.mu.
func (l *CartLedger) persistLocked() error {
	metrics.CartItems.Set(float64(len(l.items)))

	items := l.items
	if items == nil {
		items = []models.CartItem{} // store "[]", not "null"
	}
	return kv.WriteJSON(l.store, cartKey, items)
}

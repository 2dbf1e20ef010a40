package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/services"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
)

func tee() models.Product {
	return models.Product{ID: 1, Name: "Classic Cotton Tee", Price: price("499.00"), Currency: "PHP", Stock: 42}
}

func tumbler() models.Product {
	return models.Product{ID: 5, Name: "Stainless Tumbler", Price: price("1150.00"), Currency: "PHP", Stock: 65}
}

func TestAddMergesQuantityForSameProduct(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())

	require.NoError(t, ledger.Add(tee(), 2))
	require.NoError(t, ledger.Add(tee(), 3))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddSnapshotsProductDetails(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())

	require.NoError(t, ledger.Add(tee(), 1))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, "Classic Cotton Tee", items[0].Name)
	assert.True(t, items[0].Price.Equal(price("499.00")))
	assert.Equal(t, "PHP", items[0].Currency)
}

func TestTotalSumsLineSubtotals(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())

	require.NoError(t, ledger.Add(tee(), 2))     // 998.00
	require.NoError(t, ledger.Add(tumbler(), 1)) // 1150.00

	assert.True(t, ledger.Total().Equal(price("2148.00")),
		"got total %s", ledger.Total())
}

func TestSnapshotIsConsistent(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 2))
	require.NoError(t, ledger.Add(tumbler(), 1))

	items, total := ledger.Snapshot()

	require.Len(t, items, 2)
	sum := price("0")
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}
	assert.True(t, total.Equal(sum), "snapshot total %s != sum of snapshot lines %s", total, sum)
}

func TestDeductRemovesOrderedQuantities(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 5))
	require.NoError(t, ledger.Add(tumbler(), 1))

	require.NoError(t, ledger.Deduct([]models.CartItem{
		{ProductID: 1, Quantity: 2}, // partial
		{ProductID: 5, Quantity: 1}, // whole line
		{ProductID: 9, Quantity: 3}, // never in the cart
	}))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestDeductOfFullSnapshotEmptiesLedger(t *testing.T) {
	store := kv.NewMemoryStore()
	ledger := services.NewCartLedger(store)
	require.NoError(t, ledger.Add(tee(), 2))

	snapshot, _ := ledger.Snapshot()
	require.NoError(t, ledger.Deduct(snapshot))

	assert.Empty(t, ledger.Items())
	data, err := store.Read("cart")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 3))

	require.NoError(t, ledger.UpdateQuantity(1, 0))
	assert.Equal(t, 1, ledger.Items()[0].Quantity)

	require.NoError(t, ledger.UpdateQuantity(1, -7))
	assert.Equal(t, 1, ledger.Items()[0].Quantity)
}

func TestUpdateQuantityIsIdempotent(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 3))

	require.NoError(t, ledger.UpdateQuantity(1, 7))
	once := ledger.Items()

	require.NoError(t, ledger.UpdateQuantity(1, 7))
	assert.Equal(t, once, ledger.Items())
}

func TestUpdateQuantityUnknownProductIsNoOp(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 3))

	require.NoError(t, ledger.UpdateQuantity(999, 10))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestRemoveDeletesLine(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())
	require.NoError(t, ledger.Add(tee(), 1))
	require.NoError(t, ledger.Add(tumbler(), 1))

	require.NoError(t, ledger.Remove(1))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].ProductID)

	// Removing again is a no-op.
	require.NoError(t, ledger.Remove(1))
	assert.Len(t, ledger.Items(), 1)
}

func TestLedgerSurvivesRestart(t *testing.T) {
	store := kv.NewMemoryStore()

	first := services.NewCartLedger(store)
	require.NoError(t, first.Add(tee(), 2))
	require.NoError(t, first.Add(tumbler(), 1))

	// A fresh ledger over the same store sees the same cart.
	second := services.NewCartLedger(store)
	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, second.Total().Equal(first.Total()))
}

func TestCorruptStoredCartMeansEmptyCart(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Write("cart", []byte("{definitely not json")))

	ledger := services.NewCartLedger(store)
	assert.Empty(t, ledger.Items())
	assert.True(t, ledger.Total().IsZero())
}

func TestClearStoresEmptyArray(t *testing.T) {
	store := kv.NewMemoryStore()
	ledger := services.NewCartLedger(store)
	require.NoError(t, ledger.Add(tee(), 1))

	require.NoError(t, ledger.Clear())

	data, err := store.Read("cart")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestObserversNotifiedOnEveryMutation(t *testing.T) {
	ledger := services.NewCartLedger(kv.NewMemoryStore())

	calls := 0
	token := ledger.Subscribe(func() { calls++ })

	require.NoError(t, ledger.Add(tee(), 1))
	require.NoError(t, ledger.UpdateQuantity(1, 4))
	require.NoError(t, ledger.Remove(1))
	require.NoError(t, ledger.Clear())
	assert.Equal(t, 4, calls)

	ledger.Unsubscribe(token)
	require.NoError(t, ledger.Add(tee(), 1))
	assert.Equal(t, 4, calls)
}

package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/services"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fixture in catalogue order; IDs double as position markers.
func catalogue() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Classic Cotton Tee", Description: "plain crew-neck shirt", Price: price("499.00"), Rating: 4.6, NumberOfBuys: 1820, Stock: 42},
		{ID: 2, Name: "Barong Tagalog", Description: "hand-embroidered formal wear", Price: price("3450.00"), Rating: 4.9, NumberOfBuys: 310, Stock: 8},
		{ID: 3, Name: "Canvas Tote Bag", Description: "heavy-duty canvas tote", Price: price("750.50"), Rating: 4.3, NumberOfBuys: 954, Stock: 120},
		{ID: 4, Name: "Abaca Slippers", Description: "woven house slippers", Price: price("320.00"), Rating: 4.1, NumberOfBuys: 2301, Stock: 0},
		{ID: 5, Name: "Stainless Tumbler", Description: "vacuum tumbler, keeps drinks cold", Price: price("1150.00"), Rating: 4.7, NumberOfBuys: 1440, Stock: 65},
	}
}

func ids(products []models.Product) []uint {
	out := make([]uint, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyDefaultCriteria(t *testing.T) {
	svc := services.NewCatalogService()

	got := svc.Apply(catalogue(), services.DefaultCriteria())

	// Everything kept, most bought first.
	assert.Equal(t, []uint{4, 1, 5, 3, 2}, ids(got))
}

func TestApplyEmptyCatalogue(t *testing.T) {
	svc := services.NewCatalogService()

	assert.Empty(t, svc.Apply(nil, services.DefaultCriteria()))
	assert.Empty(t, svc.Apply([]models.Product{}, services.DefaultCriteria()))
}

func TestApplySearchMatchesNameAndDescription(t *testing.T) {
	svc := services.NewCatalogService()

	c := services.DefaultCriteria()
	c.Search = "TOTE"
	got := svc.Apply(catalogue(), c)
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)

	// Description-only match.
	c.Search = "drinks cold"
	got = svc.Apply(catalogue(), c)
	require.Len(t, got, 1)
	assert.Equal(t, uint(5), got[0].ID)

	c.Search = "no such thing"
	assert.Empty(t, svc.Apply(catalogue(), c))
}

func TestApplySearchWhitespaceIsSignificant(t *testing.T) {
	svc := services.NewCatalogService()

	// The query is not trimmed: a trailing space must match literally.
	c := services.DefaultCriteria()
	c.Search = "bag "
	assert.Empty(t, svc.Apply(catalogue(), c))
}

func TestApplyPriceRangeInclusive(t *testing.T) {
	svc := services.NewCatalogService()

	c := services.DefaultCriteria()
	c.MinPrice = price("499.00")
	c.MaxPrice = decimal.NewNullDecimal(price("1150.00"))

	got := svc.Apply(catalogue(), c)

	// Bounds are inclusive: 499.00 and 1150.00 both survive.
	assert.ElementsMatch(t, []uint{1, 3, 5}, ids(got))
}

func TestApplyDefaultRangeHasNoUpperBound(t *testing.T) {
	svc := services.NewCatalogService()

	// A luxury item far beyond any plausible cap must survive untouched
	// criteria: the default range is [0, unbounded].
	in := append(catalogue(), models.Product{
		ID: 99, Name: "South Sea Pearl Set", Price: price("1500000.00"), Rating: 5.0, NumberOfBuys: 3, Stock: 1,
	})

	got := svc.Apply(in, services.DefaultCriteria())
	assert.Len(t, got, len(in))
	assert.Contains(t, ids(got), uint(99))
}

func TestApplyStockFilterWithPriceSort(t *testing.T) {
	svc := services.NewCatalogService()

	c := services.DefaultCriteria()
	c.InStockOnly = true
	c.SortBy = services.SortPriceLow

	got := svc.Apply(catalogue(), c)

	// Out-of-stock slippers are gone; the rest is cheapest first.
	assert.Equal(t, []uint{1, 3, 5, 2}, ids(got))
}

func TestApplyUnknownSortKeyFallsBack(t *testing.T) {
	svc := services.NewCatalogService()

	c := services.DefaultCriteria()
	c.SortBy = services.SortKey("alphabetical")

	got := svc.Apply(catalogue(), c)
	assert.Equal(t, []uint{4, 1, 5, 3, 2}, ids(got))
}

func TestApplySortIsStable(t *testing.T) {
	svc := services.NewCatalogService()

	// Three products with identical ratings keep catalogue order.
	tied := []models.Product{
		{ID: 1, Name: "a", Price: price("10"), Rating: 4.0},
		{ID: 2, Name: "b", Price: price("20"), Rating: 4.0},
		{ID: 3, Name: "c", Price: price("30"), Rating: 4.0},
	}

	c := services.DefaultCriteria()
	c.SortBy = services.SortRatingHigh

	got := svc.Apply(tied, c)
	assert.Equal(t, []uint{1, 2, 3}, ids(got))
}

func TestApplyIsDeterministic(t *testing.T) {
	svc := services.NewCatalogService()

	c := services.DefaultCriteria()
	c.SortBy = services.SortRatingLow

	first := svc.Apply(catalogue(), c)
	second := svc.Apply(catalogue(), c)
	assert.Equal(t, first, second)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	svc := services.NewCatalogService()

	in := catalogue()
	c := services.DefaultCriteria()
	c.SortBy = services.SortPriceHigh
	svc.Apply(in, c)

	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(in))
}

package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/pkg/collection"
	"github.com/shashiranjanraj/tindahan/pkg/metrics"
)

// SortKey selects the ordering of a catalogue view.
type SortKey string

const (
	SortPopularityHigh SortKey = "popularity-high"
	SortPopularityLow  SortKey = "popularity-low"
	SortRatingHigh     SortKey = "rating-high"
	SortRatingLow      SortKey = "rating-low"
	SortPriceLow       SortKey = "price-low"
	SortPriceHigh      SortKey = "price-high"
)

// Criteria is the user-selected filter/sort configuration for one
// browsing session. Build it with DefaultCriteria and override fields.
//
// MaxPrice is a NullDecimal: invalid means no upper bound, so untouched
// defaults keep the whole catalogue no matter how it is priced.
type Criteria struct {
	Search      string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.NullDecimal
	InStockOnly bool
	SortBy      SortKey
}

// DefaultCriteria matches everything and sorts by popularity, most
// popular first.
func DefaultCriteria() Criteria {
	return Criteria{
		MinPrice: decimal.Zero,
		SortBy:   SortPopularityHigh,
	}
}

// CatalogService derives filtered, ordered views of the product catalogue.
type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// Apply runs the filter/sort pipeline over products and returns a new,
// ordered slice. The input is never mutated and every output element is an
// element of the input. The same products and criteria always produce the
// same output: the sort is stable, so products that compare equal keep
// their catalogue order.
//
// Filters run in a fixed sequence — search, price, stock — then the sort.
func (s *CatalogService) Apply(products []models.Product, c Criteria) []models.Product {
	defer metrics.ObserveCatalogQuery(time.Now())

	out := products

	// The query is matched verbatim apart from case: whitespace is
	// significant, same as the storefront search box.
	if q := strings.ToLower(c.Search); q != "" {
		out = collection.Filter(out, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q)
		})
	}

	// The price filter always runs; the default range is [0, unbounded]
	// so untouched criteria keep everything.
	out = collection.Filter(out, func(p models.Product) bool {
		if p.Price.LessThan(c.MinPrice) {
			return false
		}
		return !c.MaxPrice.Valid || p.Price.LessThanOrEqual(c.MaxPrice.Decimal)
	})

	if c.InStockOnly {
		out = collection.Filter(out, func(p models.Product) bool {
			return p.InStock()
		})
	}

	return collection.SortBy(out, less(c.SortBy))
}

// less returns the comparator for the given sort key. Unrecognised keys
// fall back to popularity-high.
func less(key SortKey) func(a, b models.Product) bool {
	switch key {
	case SortPopularityLow:
		return func(a, b models.Product) bool { return a.NumberOfBuys < b.NumberOfBuys }
	case SortRatingHigh:
		return func(a, b models.Product) bool { return a.Rating > b.Rating }
	case SortRatingLow:
		return func(a, b models.Product) bool { return a.Rating < b.Rating }
	case SortPriceLow:
		return func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		return func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	default:
		return func(a, b models.Product) bool { return a.NumberOfBuys > b.NumberOfBuys }
	}
}

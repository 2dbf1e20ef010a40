package seeders

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/config"
)

func init() {
	Register("products", SeedProducts)
}

// seedProduct mirrors the catalog JSON. Price is kept as a raw string
// so parsing is explicit: a malformed price aborts the seed rather than
// being silently coerced to zero.
type seedProduct struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        string  `json:"price"`
	Currency     string  `json:"currency"`
	Image1URL    string  `json:"image1_url"`
	Image2URL    string  `json:"image2_url"`
	ProductURL   string  `json:"product_url"`
	Rating       float64 `json:"rating"`
	NumberOfBuys int     `json:"number_of_buys"`
	Stock        int     `json:"stock"`
}

// SeedProducts loads the catalog seed file into the products table.
// Existing rows with the same ID are replaced.
func SeedProducts(db *gorm.DB) error {
	path := config.CatalogSeed()

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog seed %s: %w", path, err)
	}

	var rows []seedProduct
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("parse catalog seed %s: %w", path, err)
	}

	seen := make(map[uint]bool, len(rows))
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		if row.ID == 0 {
			return fmt.Errorf("catalog seed: product %q has no id", row.Name)
		}
		if seen[row.ID] {
			return fmt.Errorf("catalog seed: duplicate product id %d", row.ID)
		}
		seen[row.ID] = true

		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return fmt.Errorf("catalog seed: product %d has malformed price %q: %w", row.ID, row.Price, err)
		}
		if price.IsNegative() {
			return fmt.Errorf("catalog seed: product %d has negative price %s", row.ID, price)
		}

		currency := row.Currency
		if currency == "" {
			currency = models.DefaultCurrency
		}

		products = append(products, models.Product{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			Price:        price,
			Currency:     currency,
			Image1URL:    row.Image1URL,
			Image2URL:    row.Image2URL,
			ProductURL:   row.ProductURL,
			Rating:       row.Rating,
			NumberOfBuys: row.NumberOfBuys,
			Stock:        row.Stock,
		})
	}

	for _, p := range products {
		if err := db.Save(&p).Error; err != nil {
			return fmt.Errorf("save product %d: %w", p.ID, err)
		}
	}
	return nil
}

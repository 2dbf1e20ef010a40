package models

import "github.com/shopspring/decimal"

// DefaultCurrency is assumed when a catalogue entry carries none.
const DefaultCurrency = "PHP"

// Product is one catalogue entry. The catalogue is read-only at runtime:
// rows are written by the seeder, never by request handlers.
//
// Price is parsed into a decimal once at the load boundary; nothing
// downstream ever re-parses the text form.
type Product struct {
	ID           uint            `gorm:"primaryKey"                        json:"id"`
	Name         string          `gorm:"size:255;not null;index"           json:"name"`
	Description  string          `gorm:"type:text"                         json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"       json:"price"`
	Currency     string          `gorm:"size:8;not null;default:PHP"       json:"currency"`
	Image1URL    string          `gorm:"size:512"                          json:"image1_url"`
	Image2URL    string          `gorm:"size:512"                          json:"image2_url"`
	ProductURL   string          `gorm:"size:512"                          json:"product_url"`
	Rating       float64         `gorm:"not null;default:0"                json:"rating"`
	NumberOfBuys int             `gorm:"not null;default:0"                json:"number_of_buys"`
	Stock        int             `gorm:"not null;default:0"                json:"stock"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }

package models

import "github.com/shopspring/decimal"

// CartItem is one line of the cart ledger: a snapshot of the product's
// name, price and currency taken at add-time, plus a quantity.
//
// There is at most one line per product ID; adding the same product again
// merges into the existing line.
type CartItem struct {
	ProductID uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price × quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Checkout only ever creates "pending" orders; the later
// states exist for external fulfilment tooling that reads the history.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ShippingInfo is the contact/delivery form collected at checkout.
// Every field is mandatory; validation runs before any state is written.
type ShippingInfo struct {
	FirstName  string `json:"first_name"  validate:"required,max=100"`
	LastName   string `json:"last_name"   validate:"required,max=100"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required,min=7,max=20"`
	Address    string `json:"address"     validate:"required,max=500"`
	City       string `json:"city"        validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// Order is an append-only record created at checkout. Orders are never
// mutated after creation.
type Order struct {
	ID        string          `json:"id"` // millisecond timestamp at creation
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	Customer  ShippingInfo    `json:"customer_info"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

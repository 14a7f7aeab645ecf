// Package order turns submitted carts into immutable order records and
// serves the customer's order history.
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/address"
)

// Item is a line-item snapshot inside an order. It is decoupled from the
// live cart: cart mutations after ordering never touch it.
type Item struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Payment struct {
	Method string        `json:"method"`
	ID     string        `json:"id"`
	Status PaymentStatus `json:"status"`
}

// Order is the historical record created at submission. Immutable from this
// client's perspective except for status transitions applied by the
// fulfillment side.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId,omitempty"`
	PlacedAt   time.Time       `json:"orderDate"`
	Status     Status          `json:"status"`
	Restaurant string          `json:"restaurant"`
	Items      []Item          `json:"items"`
	Address    address.Address `json:"address"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Delivery   decimal.Decimal `json:"deliveryFee"`
	Taxes      decimal.Decimal `json:"taxes"`
	Total      decimal.Decimal `json:"total"`
	Payment    Payment         `json:"payment"`
}

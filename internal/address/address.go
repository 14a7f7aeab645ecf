// Package address supplies the customer's saved delivery addresses. The cart
// holds a non-owning reference to one of them; nothing here validates that
// the reference belongs to the current customer.
package address

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("address not found")

type Address struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"` // Home, Office, ...
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	IsDefault  bool     `json:"isDefault"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// Store manages a customer's address collection. Add/Edit/Delete each return
// the refreshed full collection, not deltas.
type Store interface {
	List(ctx context.Context, customerID string) ([]Address, error)
	Add(ctx context.Context, customerID string, a Address) ([]Address, error)
	Edit(ctx context.Context, customerID string, a Address) ([]Address, error)
	Delete(ctx context.Context, customerID, addressID string) ([]Address, error)
}

// DefaultOf returns the address flagged as default, or nil if none is.
func DefaultOf(list []Address) *Address {
	for i := range list {
		if list[i].IsDefault {
			return &list[i]
		}
	}
	return nil
}

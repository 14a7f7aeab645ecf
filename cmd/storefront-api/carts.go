package main

import (
	"sync"

	"github.com/quickbites/storefront/internal/cart"
)

// cartRegistry hands out one cart store per customer, restored lazily from
// the configured storage backend. There is one logical writer per cart (the
// customer's session), the registry just makes lookups safe.
type cartRegistry struct {
	mu      sync.Mutex
	carts   map[string]*cart.Store
	storage func(customerID string) cart.Storage
}

func newCartRegistry(storage func(customerID string) cart.Storage) *cartRegistry {
	return &cartRegistry{
		carts:   make(map[string]*cart.Store),
		storage: storage,
	}
}

func (r *cartRegistry) For(customerID string) (*cart.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.carts[customerID]; ok {
		return s, nil
	}
	s, err := cart.NewStore(r.storage(customerID))
	if err != nil {
		return nil, err
	}
	r.carts[customerID] = s
	return s, nil
}

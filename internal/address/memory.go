package address

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps address collections per customer in memory. New
// customers start with the demo addresses so the storefront is usable
// without a backing customer API.
type MemoryStore struct {
	mu   sync.Mutex
	byID map[string][]Address
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string][]Address)}
}

func seedAddresses() []Address {
	return []Address{
		{ID: uuid.NewString(), Label: "Home", Street: "BTM Layout, 16th Main, 1st Sector", City: "Bengaluru", PostalCode: "560001", IsDefault: true},
		{ID: uuid.NewString(), Label: "Office", Street: "Anna Nagar, 1st Street", City: "Chennai", PostalCode: "600001"},
	}
}

func (m *MemoryStore) collection(customerID string) []Address {
	list, ok := m.byID[customerID]
	if !ok {
		list = seedAddresses()
		m.byID[customerID] = list
	}
	return list
}

func snapshot(list []Address) []Address {
	return append([]Address(nil), list...)
}

func (m *MemoryStore) List(ctx context.Context, customerID string) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.collection(customerID)), nil
}

func (m *MemoryStore) Add(ctx context.Context, customerID string, a Address) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.collection(customerID)
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.IsDefault {
		clearDefault(list)
	} else if DefaultOf(list) == nil {
		// first address becomes the default
		a.IsDefault = true
	}
	list = append(list, a)
	m.byID[customerID] = list
	return snapshot(list), nil
}

func (m *MemoryStore) Edit(ctx context.Context, customerID string, a Address) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.collection(customerID)
	for i := range list {
		if list[i].ID == a.ID {
			if a.IsDefault {
				clearDefault(list)
			}
			list[i] = a
			return snapshot(list), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Delete(ctx context.Context, customerID, addressID string) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.collection(customerID)
	out := list[:0:0]
	found := false
	for _, a := range list {
		if a.ID == addressID {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		return nil, ErrNotFound
	}
	m.byID[customerID] = out
	return snapshot(out), nil
}

func clearDefault(list []Address) {
	for i := range list {
		list[i].IsDefault = false
	}
}

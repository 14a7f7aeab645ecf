package cart

import (
	"errors"

	"github.com/quickbites/storefront/internal/address"
	"github.com/quickbites/storefront/internal/localstore"
)

// FileStorage keeps the cart in the local document store under a stable
// per-customer key, the way the original storefront kept it in browser
// storage.
type FileStorage struct {
	store *localstore.Store
	key   string
}

func NewFileStorage(store *localstore.Store, key string) *FileStorage {
	return &FileStorage{store: store, key: key}
}

func (f *FileStorage) Load() ([]Line, *address.Address, error) {
	var st state
	err := f.store.Get(f.key, &st)
	if errors.Is(err, localstore.ErrNoDocument) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return st.Lines, st.Address, nil
}

func (f *FileStorage) Save(lines []Line, addr *address.Address) error {
	return f.store.Put(f.key, state{Lines: lines, Address: addr})
}

func (f *FileStorage) Clear() error {
	return f.store.Delete(f.key)
}

// NopStorage discards everything. Used in tests and for anonymous carts.
type NopStorage struct{}

func (NopStorage) Load() ([]Line, *address.Address, error) { return nil, nil, nil }
func (NopStorage) Save([]Line, *address.Address) error     { return nil }
func (NopStorage) Clear() error                            { return nil }

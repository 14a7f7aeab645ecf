package order

import (
	"context"
	"errors"

	"github.com/quickbites/storefront/internal/localstore"
)

// LocalRepo keeps order history as a JSON list in the local document store,
// newest first, under a per-customer key. The store serializes the
// read-modify-write so interleaved submissions cannot lose an entry.
type LocalRepo struct {
	store *localstore.Store
}

func NewLocalRepo(store *localstore.Store) *LocalRepo {
	return &LocalRepo{store: store}
}

func key(customerID string) string {
	return "orders-" + customerID
}

func (r *LocalRepo) Create(ctx context.Context, o *Order) error {
	var list []Order
	return r.store.Update(key(o.CustomerID), &list, func() error {
		list = append([]Order{*o}, list...)
		return nil
	})
}

func (r *LocalRepo) List(ctx context.Context, customerID string) ([]Order, error) {
	var list []Order
	err := r.store.Get(key(customerID), &list)
	if errors.Is(err, localstore.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

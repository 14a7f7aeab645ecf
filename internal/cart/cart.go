// Package cart holds the customer's in-progress, unsubmitted selection. The
// cart keeps at most one line per item; adding an existing item bumps its
// quantity instead of appending a second line. Prices are captured at the
// time of adding, there is no re-pricing.
package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/address"
)

var ErrNegativeQuantity = errors.New("quantity must not be negative")

type Line struct {
	ItemID       string          `json:"itemId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	RestaurantID string          `json:"restaurantId"`
}

// Item is what the catalog hands to AddItem.
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// state is what gets persisted: lines in insertion order plus the selected
// delivery address reference.
type state struct {
	Lines   []Line           `json:"lines"`
	Address *address.Address `json:"address,omitempty"`
}

// Storage persists cart state under a stable key. Absent state loads as an
// empty cart.
type Storage interface {
	Load() (lines []Line, addr *address.Address, err error)
	Save(lines []Line, addr *address.Address) error
	Clear() error
}

// Store is the cart store. It is restored from Storage once at construction
// and re-persisted on every mutation. The mutex keeps read-modify-write
// sequences whole; there is still only one logical writer per cart.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	addr    *address.Address
	storage Storage
}

func NewStore(storage Storage) (*Store, error) {
	lines, addr, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{lines: lines, addr: addr, storage: storage}, nil
}

// AddItem merges into an existing line for the same item or appends a new
// line with quantity 1.
func (s *Store) AddItem(item Item, restaurantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			return s.persist()
		}
	}
	s.lines = append(s.lines, Line{
		ItemID:       item.ID,
		Name:         item.Name,
		UnitPrice:    item.Price,
		Quantity:     1,
		RestaurantID: restaurantID,
	})
	return s.persist()
}

// RemoveItem drops the line for itemID. Removing an absent item is a no-op.
func (s *Store) RemoveItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(itemID)
}

func (s *Store) removeLocked(itemID string) error {
	out := s.lines[:0:0]
	changed := false
	for _, ln := range s.lines {
		if ln.ItemID == itemID {
			changed = true
			continue
		}
		out = append(out, ln)
	}
	if !changed {
		return nil
	}
	s.lines = out
	return s.persist()
}

// SetQuantity sets the line's quantity. Zero removes the line; negative
// quantities are rejected.
func (s *Store) SetQuantity(itemID string, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty == 0 {
		return s.removeLocked(itemID)
	}
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = qty
			return s.persist()
		}
	}
	return nil
}

// Clear removes the persisted state and then empties the cart. Memory is
// untouched on failure so it never diverges from what the next restore
// would load.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return err
	}
	s.lines = nil
	s.addr = nil
	return nil
}

// Total is the sum of unitPrice x quantity over all lines; 0 for an empty cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, ln := range s.lines {
		total = total.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, ln := range s.lines {
		n += ln.Quantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

// SelectAddress records the delivery address reference. Whether the address
// belongs to the customer is the caller's responsibility.
func (s *Store) SelectAddress(a *address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addr = a
	return s.persist()
}

func (s *Store) SelectedAddress() *address.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addr == nil {
		return nil
	}
	cp := *s.addr
	return &cp
}

// persist must be called with the mutex held.
func (s *Store) persist() error {
	return s.storage.Save(s.lines, s.addr)
}

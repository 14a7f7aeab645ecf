package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/cart"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoAddress = errors.New("no delivery address selected")
)

// IDGenerator hands out timestamp-based order ids, strictly increasing for
// this client even when the millisecond clock repeats.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// RestaurantNamer resolves a restaurant id to its display name for the
// order record.
type RestaurantNamer interface {
	RestaurantName(id string) (string, bool)
}

// Service assembles a cart snapshot into an order and records it. Recording
// is at-most-once: the cart is cleared only after the whole write succeeds.
type Service struct {
	repo        Repository
	ids         *IDGenerator
	names       RestaurantNamer
	deliveryFee decimal.Decimal
	taxAmount   decimal.Decimal
}

func NewService(repo Repository, deliveryFee, taxAmount decimal.Decimal) *Service {
	return &Service{
		repo:        repo,
		ids:         NewIDGenerator(),
		deliveryFee: deliveryFee,
		taxAmount:   taxAmount,
	}
}

// WithRestaurantNames lets orders carry the restaurant's display name rather
// than its raw id.
func (s *Service) WithRestaurantNames(n RestaurantNamer) *Service {
	s.names = n
	return s
}

// Submit validates the cart, snapshots it into a confirmed order, persists
// the order at the head of the customer's history and then clears the cart.
// On any failure the cart is left untouched.
func (s *Service) Submit(ctx context.Context, customerID string, c *cart.Store, paymentMethod string) (*Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	addr := c.SelectedAddress()
	if addr == nil {
		return nil, ErrNoAddress
	}

	subtotal := c.Total()
	items := make([]Item, 0, len(lines))
	restaurant := ""
	for _, ln := range lines {
		items = append(items, Item{Name: ln.Name, UnitPrice: ln.UnitPrice, Quantity: ln.Quantity})
		if restaurant == "" {
			restaurant = ln.RestaurantID
		}
	}
	if s.names != nil {
		if name, ok := s.names.RestaurantName(restaurant); ok {
			restaurant = name
		}
	}
	if paymentMethod == "" {
		paymentMethod = "Cash on Delivery"
	}

	o := &Order{
		ID:         s.ids.Next(),
		CustomerID: customerID,
		PlacedAt:   time.Now().UTC(),
		Status:     StatusConfirmed,
		Restaurant: restaurant,
		Items:      items,
		Address:    *addr,
		Subtotal:   subtotal,
		Delivery:   s.deliveryFee,
		Taxes:      s.taxAmount,
		Total:      subtotal.Add(s.deliveryFee).Add(s.taxAmount),
		Payment: Payment{
			Method: paymentMethod,
			ID:     uuid.NewString(),
			Status: PaymentPending,
		},
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	if err := c.Clear(); err != nil {
		// The order is recorded; a stale cart is recoverable, a duplicate
		// order is not.
		return o, fmt.Errorf("clear cart after order %s: %w", o.ID, err)
	}
	return o, nil
}

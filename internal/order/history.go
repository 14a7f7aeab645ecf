package order

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// CSVHeader and CSVFileName define the order export format: one row per
// order, items joined into a single cell.
const (
	CSVHeader   = "Order ID,Date,Status,Total,Payment Method,Items"
	CSVFileName = "orders.csv"
	csvDateFmt  = "Jan 2, 2006 3:04 PM"
)

// History serves the customer's past orders. A just-placed order is
// remembered optimistically and prepended until the canonical list catches
// up, de-duplicated by id.
type History struct {
	repo Repository

	mu      sync.Mutex
	pending map[string][]Order // customerID -> optimistic orders, newest first
}

func NewHistory(repo Repository) *History {
	return &History{repo: repo, pending: make(map[string][]Order)}
}

// Remember records an optimistic just-placed order for display continuity.
func (h *History) Remember(o Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[o.CustomerID] = append([]Order{o}, h.pending[o.CustomerID]...)
}

// Load fetches the canonical list and reconciles it with any optimistic
// orders the fetch has not caught up with yet.
func (h *History) Load(ctx context.Context, customerID string) ([]Order, error) {
	list, err := h.repo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[string]bool, len(list))
	for _, o := range list {
		seen[o.ID] = true
	}

	var keep []Order
	var missing []Order
	for _, o := range h.pending[customerID] {
		if seen[o.ID] {
			continue // canonical list caught up, drop the optimistic copy
		}
		keep = append(keep, o)
		missing = append(missing, o)
	}
	if keep == nil {
		delete(h.pending, customerID)
	} else {
		h.pending[customerID] = keep
	}
	return append(missing, list...), nil
}

// Filter returns the orders whose restaurant name or status matches q,
// case-insensitively, substring, OR across the two fields. It is a view:
// the input is never mutated.
func Filter(orders []Order, q string) []Order {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return append([]Order(nil), orders...)
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Restaurant), q) ||
			strings.Contains(strings.ToLower(string(o.Status)), q) {
			out = append(out, o)
		}
	}
	return out
}

// ExportCSV renders the list as CSV, byte-for-byte reproducible from the
// same input. The Date and Items cells are always quoted since both can
// carry separator characters.
func ExportCSV(orders []Order) []byte {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, o := range orders {
		parts := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			parts = append(parts, it.Name+" x "+strconv.Itoa(it.Quantity))
		}
		b.WriteString(o.ID)
		b.WriteByte(',')
		b.WriteString(csvQuote(o.PlacedAt.UTC().Format(csvDateFmt)))
		b.WriteByte(',')
		b.WriteString(string(o.Status))
		b.WriteByte(',')
		b.WriteString(o.Total.String())
		b.WriteByte(',')
		b.WriteString(o.Payment.Method)
		b.WriteByte(',')
		b.WriteString(csvQuote(strings.Join(parts, "; ")))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

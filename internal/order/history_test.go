package order

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []Order {
	placed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []Order{
		{
			ID: "2", PlacedAt: placed, Status: StatusCancelled, Restaurant: "Pizza Palace",
			Total: dec(399), Payment: Payment{Method: "Credit Card", Status: PaymentRefunded},
			Items: []Item{{Name: "Margherita Pizza", UnitPrice: dec(399), Quantity: 1}},
		},
		{
			ID: "1", PlacedAt: placed.Add(-24 * time.Hour), Status: StatusDelivered, Restaurant: "Spice Garden",
			Total: dec(548), Payment: Payment{Method: "UPI", Status: PaymentSuccess},
			Items: []Item{
				{Name: "Chicken Biryani", UnitPrice: dec(299), Quantity: 1},
				{Name: "Paneer Butter Masala", UnitPrice: dec(249), Quantity: 1},
			},
		},
	}
}

func TestFilterByStatus(t *testing.T) {
	orders := sampleOrders()

	got := Filter(orders, "CANCELLED")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilterByRestaurant(t *testing.T) {
	orders := sampleOrders()

	got := Filter(orders, "spice")
	require.Len(t, got, 1)
	assert.Equal(t, "Spice Garden", got[0].Restaurant)
}

func TestFilterIsAView(t *testing.T) {
	orders := sampleOrders()

	got := Filter(orders, "")
	require.Len(t, got, 2)
	got[0].Restaurant = "mutated"
	assert.Equal(t, "Pizza Palace", orders[0].Restaurant, "filtering must not alter stored orders")
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, Filter(sampleOrders(), "sushi"))
}

func TestExportCSV(t *testing.T) {
	out := ExportCSV(sampleOrders())
	lines := bytes.Split(bytes.TrimRight(out, "\n"), []byte("\n"))
	require.Len(t, lines, 3, "header + one row per order")

	assert.Equal(t, CSVHeader, string(lines[0]))
	assert.Equal(t, `2,"Jan 15, 2024 10:30 AM",cancelled,399,Credit Card,"Margherita Pizza x 1"`, string(lines[1]))
	assert.Equal(t, `1,"Jan 14, 2024 10:30 AM",delivered,548,UPI,"Chicken Biryani x 1; Paneer Butter Masala x 1"`, string(lines[2]))
}

func TestExportCSVDeterministic(t *testing.T) {
	orders := sampleOrders()
	assert.Equal(t, ExportCSV(orders), ExportCSV(orders), "byte-for-byte reproducible")
}

func TestExportCSVEmpty(t *testing.T) {
	assert.Equal(t, CSVHeader+"\n", string(ExportCSV(nil)))
}

func TestHistoryMergesOptimisticOrder(t *testing.T) {
	repo := &stubRepo{orders: nil}
	h := NewHistory(repo)

	canonical := Order{ID: "1", CustomerID: "cust-1", Status: StatusDelivered, Restaurant: "Spice Garden"}
	repo.orders = []Order{canonical}

	// a just-placed order the canonical fetch does not know about yet
	fresh := Order{ID: "99", CustomerID: "cust-1", Status: StatusConfirmed, Restaurant: "Pizza Palace"}
	h.Remember(fresh)

	got, err := h.Load(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "99", got[0].ID, "optimistic order is prepended")
	assert.Equal(t, "1", got[1].ID)
}

func TestHistoryDeduplicatesOnceCanonical(t *testing.T) {
	repo := &stubRepo{}
	h := NewHistory(repo)

	fresh := Order{ID: "99", CustomerID: "cust-1", Status: StatusConfirmed}
	h.Remember(fresh)

	// canonical list has caught up
	repo.orders = []Order{fresh}

	got, err := h.Load(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, got, 1, "no duplicate once the canonical list includes the order")

	// the optimistic copy is dropped for good
	got, err = h.Load(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStatusPresentationFallback(t *testing.T) {
	assert.Equal(t, "Delivered", StatusDelivered.Presentation().Label)
	assert.Equal(t, "Cancelled", StatusCancelled.Presentation().Label)
	assert.Equal(t, "Unknown", Status("exploded").Presentation().Label)

	assert.Equal(t, "green", PaymentSuccess.Color())
	assert.Equal(t, "gray", PaymentStatus("???").Color())

	assert.Equal(t, "smartphone", MethodIcon("UPI"))
	assert.Equal(t, "credit-card", MethodIcon("Cash on Delivery"))
}

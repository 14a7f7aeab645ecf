package cart

import (
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbites/storefront/internal/address"
	"github.com/quickbites/storefront/internal/localstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(NopStorage{})
	require.NoError(t, err)
	return s
}

func dish(id, name string, price int64) Item {
	return Item{ID: id, Name: name, Price: decimal.NewFromInt(price)}
}

func TestAddItemMergesSameItem(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddItem(dish("1", "Chicken Biryani", 299), "r1"))
	require.NoError(t, s.AddItem(dish("1", "Chicken Biryani", 299), "r1"))

	lines := s.Lines()
	require.Len(t, lines, 1, "same item must merge, not append")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s.AddItem(dish("2", "Paneer", 249), "r1"))
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].ItemID)
	assert.Equal(t, "2", lines[1].ItemID)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))

	require.NoError(t, s.SetQuantity("1", 0))
	assert.Empty(t, s.Lines())

	// same as RemoveItem on a fresh store
	s2 := newTestStore(t)
	require.NoError(t, s2.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s2.RemoveItem("1"))
	assert.Equal(t, s.Lines(), s2.Lines())
}

func TestSetQuantityNegativeRejected(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))

	err := s.SetQuantity("1", -1)
	require.ErrorIs(t, err, ErrNegativeQuantity)
	assert.Equal(t, 1, s.Lines()[0].Quantity, "rejected input must not mutate")
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RemoveItem("missing"))
}

func TestTotal(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.Total().IsZero(), "empty cart totals 0")

	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s.AddItem(dish("2", "Paneer", 249), "r1"))
	assert.Equal(t, "548", s.Total().String())

	require.NoError(t, s.SetQuantity("1", 3))
	assert.Equal(t, "1146", s.Total().String())
}

func TestSelectAddress(t *testing.T) {
	s := newTestStore(t)
	assert.Nil(t, s.SelectedAddress())

	a := &address.Address{ID: "a1", Label: "Home", IsDefault: true}
	require.NoError(t, s.SelectAddress(a))
	got := s.SelectedAddress()
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	storage := NewFileStorage(store, "cart")

	s, err := NewStore(storage)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s.AddItem(dish("2", "Paneer", 249), "r1"))
	require.NoError(t, s.SetQuantity("2", 4))

	// reload from the same storage, as a new session would
	reloaded, err := NewStore(NewFileStorage(store, "cart"))
	require.NoError(t, err)

	type pair struct {
		id  string
		qty int
	}
	collect := func(s *Store) []pair {
		var out []pair
		for _, ln := range s.Lines() {
			out = append(out, pair{ln.ItemID, ln.Quantity})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
		return out
	}
	assert.Equal(t, collect(s), collect(reloaded))
	assert.Equal(t, s.Total().String(), reloaded.Total().String())
}

func TestClearRemovesPersistedState(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	s, err := NewStore(NewFileStorage(store, "cart"))
	require.NoError(t, err)
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s.Clear())

	assert.Empty(t, s.Lines())
	assert.Nil(t, s.SelectedAddress())

	reloaded, err := NewStore(NewFileStorage(store, "cart"))
	require.NoError(t, err)
	assert.Empty(t, reloaded.Lines())
}

// failingClearStorage loads and saves fine but cannot delete.
type failingClearStorage struct {
	NopStorage
}

func (failingClearStorage) Clear() error { return errors.New("storage unavailable") }

func TestClearKeepsCartWhenStorageFails(t *testing.T) {
	s, err := NewStore(failingClearStorage{})
	require.NoError(t, err)
	require.NoError(t, s.AddItem(dish("1", "Biryani", 299), "r1"))
	require.NoError(t, s.SelectAddress(&address.Address{ID: "a1", Label: "Home"}))

	require.Error(t, s.Clear())

	// memory still matches what the next restore would load
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, "1", s.Lines()[0].ItemID)
	assert.NotNil(t, s.SelectedAddress())
}

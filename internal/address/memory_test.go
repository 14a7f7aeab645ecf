package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSeedsNewCustomer(t *testing.T) {
	m := NewMemoryStore()

	list, err := m.List(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotNil(t, DefaultOf(list))
}

func TestAddReturnsFullCollection(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	list, err := m.Add(ctx, "c1", Address{Label: "Gym", Street: "5th Cross", City: "Bengaluru", PostalCode: "560034"})
	require.NoError(t, err)
	assert.Len(t, list, 3, "mutations return the refreshed collection, not deltas")
}

func TestSingleDefaultInvariant(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	list, err := m.Add(ctx, "c1", Address{Label: "Gym", IsDefault: true})
	require.NoError(t, err)

	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default address")
	assert.Equal(t, "Gym", DefaultOf(list).Label)
}

func TestEditUnknownAddress(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.Edit(context.Background(), "c1", Address{ID: "nope"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	list, err := m.List(ctx, "c1")
	require.NoError(t, err)

	out, err := m.Delete(ctx, "c1", list[1].ID)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = m.Delete(ctx, "c1", "already-gone")
	require.ErrorIs(t, err, ErrNotFound)
}

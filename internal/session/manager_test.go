package session

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestManager(st storage.Store) *Manager {
	return NewManager(st, testLogger(), decimal.RequireFromString("0.0825"))
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	m := newTestManager(storage.NewMemoryStore())

	first := m.Cart(context.Background(), "sess-1")
	second := m.Cart(context.Background(), "sess-1")

	assert.Same(t, first, second)
}

func TestManagerIsolatesSessions(t *testing.T) {
	m := newTestManager(storage.NewMemoryStore())

	a := m.Cart(context.Background(), "sess-a")
	b := m.Cart(context.Background(), "sess-b")
	require.NotSame(t, a, b)

	result := a.AddItem(context.Background(), cart.AddItemRequest{
		MenuItemID: "item-burger",
		Name:       "Classic Burger",
		BasePrice:  decimal.RequireFromString("8.00"),
		LocationID: "loc-1",
	}, 1, "")
	require.True(t, result.Success)

	assert.Len(t, a.Items(), 1)
	assert.Empty(t, b.Items())
}

func TestManagerEvictRehydratesFromStorage(t *testing.T) {
	mem := storage.NewMemoryStore()
	m := newTestManager(mem)

	crt := m.Cart(context.Background(), "sess-1")
	result := crt.AddItem(context.Background(), cart.AddItemRequest{
		MenuItemID: "item-burger",
		Name:       "Classic Burger",
		BasePrice:  decimal.RequireFromString("8.00"),
		LocationID: "loc-1",
	}, 2, "")
	require.True(t, result.Success)

	m.Evict("sess-1")

	reloaded := m.Cart(context.Background(), "sess-1")
	require.NotSame(t, crt, reloaded)
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, 2, reloaded.Items()[0].Quantity)
	assert.Equal(t, "loc-1", reloaded.LocationID())
}

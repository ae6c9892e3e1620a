package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testTaxRate() decimal.Decimal {
	return decimal.RequireFromString("0.0825")
}

func newTestStore(st storage.Store) *Store {
	return NewStore(context.Background(), "sess-1", st, testLogger(), testTaxRate())
}

func burgerRequest() AddItemRequest {
	return AddItemRequest{
		MenuItemID: "item-burger",
		Name:       "Classic Burger",
		BasePrice:  decimal.RequireFromString("8.00"),
		LocationID: "loc-1",
	}
}

// failingStore simulates a broken persistence layer
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", storage.ErrNotFound
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func (failingStore) Delete(context.Context, ...string) error {
	return errors.New("storage unavailable")
}

func TestAddItemCommitsLocation(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	result := s.AddItem(context.Background(), burgerRequest(), 1, "")

	require.True(t, result.Success)
	assert.Equal(t, "loc-1", s.LocationID())
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "loc-1", s.Items()[0].LocationID)
}

func TestAddItemGeneratesDistinctCartIDs(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	req := burgerRequest()
	require.True(t, s.AddItem(context.Background(), req, 1, "").Success)

	fries := AddItemRequest{
		MenuItemID: "item-fries",
		Name:       "Fries",
		BasePrice:  decimal.RequireFromString("3.00"),
		LocationID: "loc-1",
	}
	require.True(t, s.AddItem(context.Background(), fries, 1, "").Success)

	items := s.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].CartID, items[1].CartID)
	assert.Contains(t, items[0].CartID, "item-burger-")
	assert.Contains(t, items[1].CartID, "item-fries-")
}

func TestAddItemWithoutAnyLocation(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	req := burgerRequest()
	req.LocationID = ""

	result := s.AddItem(context.Background(), req, 1, "")

	assert.False(t, result.Success)
	assert.Equal(t, NoLocationMessage, result.Error)
	assert.Empty(t, s.Items())
	assert.Empty(t, s.LocationID())
}

func TestAddItemFallsBackToAmbientLocation(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	req := burgerRequest()
	req.LocationID = ""

	result := s.AddItem(context.Background(), req, 1, "loc-2")

	require.True(t, result.Success)
	assert.Equal(t, "loc-2", s.LocationID())
}

func TestAddItemCrossLocationRejected(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 1, "").Success)

	other := burgerRequest()
	other.MenuItemID = "item-taco"
	other.Name = "Taco"
	other.LocationID = "loc-2"

	result := s.AddItem(context.Background(), other, 1, "")

	assert.False(t, result.Success)
	assert.Equal(t, CrossLocationMessage, result.Error)

	// State is unchanged
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "item-burger", s.Items()[0].MenuItemID)
	assert.Equal(t, "loc-1", s.LocationID())
}

func TestAddItemMergesIdenticalSelections(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	req := burgerRequest()
	req.SelectedOptions = map[string][]SelectedOption{
		"Toppings": {
			{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")},
			{Name: "Cheese", PriceModifier: decimal.RequireFromString("0.75")},
		},
	}
	require.True(t, s.AddItem(context.Background(), req, 1, "").Success)

	// Same selections listed in a different order still merge
	reordered := burgerRequest()
	reordered.SelectedOptions = map[string][]SelectedOption{
		"Toppings": {
			{Name: "Cheese", PriceModifier: decimal.RequireFromString("0.75")},
			{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")},
		},
	}
	require.True(t, s.AddItem(context.Background(), reordered, 2, "").Success)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemDistinctSelectionsSeparateEntries(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	plain := burgerRequest()
	require.True(t, s.AddItem(context.Background(), plain, 1, "").Success)

	customized := burgerRequest()
	customized.SelectedOptions = map[string][]SelectedOption{
		"Toppings": {{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")}},
	}
	require.True(t, s.AddItem(context.Background(), customized, 1, "").Success)

	items := s.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].CartID, items[1].CartID)
	assert.Len(t, s.ItemsByMenuID("item-burger"), 2)
}

func TestAddItemQuantityFloor(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	result := s.AddItem(context.Background(), burgerRequest(), 0, "")

	require.True(t, result.Success)
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 1, "").Success)
	cartID := s.Items()[0].CartID

	s.UpdateQuantity(context.Background(), cartID, 5)

	assert.Equal(t, 5, s.Items()[0].Quantity)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 2, "").Success)
	cartID := s.Items()[0].CartID

	s.UpdateQuantity(context.Background(), cartID, 0)

	assert.Empty(t, s.Items())
	assert.Empty(t, s.LocationID())
}

func TestUpdateQuantityUnknownIDNoOp(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 2, "").Success)

	s.UpdateQuantity(context.Background(), "missing", 9)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestRemoveItemByMenuIDDropsAllVariants(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	plain := burgerRequest()
	require.True(t, s.AddItem(context.Background(), plain, 1, "").Success)

	customized := burgerRequest()
	customized.SelectedOptions = map[string][]SelectedOption{
		"Toppings": {{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")}},
	}
	require.True(t, s.AddItem(context.Background(), customized, 1, "").Success)

	s.RemoveItem(context.Background(), "item-burger")

	assert.Empty(t, s.Items())
}

func TestRemoveLastItemClearsLocation(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 1, "").Success)
	cartID := s.Items()[0].CartID

	s.RemoveItem(context.Background(), cartID)

	assert.Empty(t, s.Items())
	assert.Empty(t, s.LocationID())

	// A different location is accepted now that the cart is empty again
	other := burgerRequest()
	other.LocationID = "loc-2"
	result := s.AddItem(context.Background(), other, 1, "")

	require.True(t, result.Success)
	assert.Equal(t, "loc-2", s.LocationID())
}

func TestClearPurgesStorage(t *testing.T) {
	mem := storage.NewMemoryStore()
	s := newTestStore(mem)
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 1, "").Success)
	require.NotZero(t, mem.Len())

	s.Clear(context.Background())

	assert.Empty(t, s.Items())
	assert.Empty(t, s.LocationID())
	assert.Zero(t, mem.Len())
}

func TestTotals(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 2, "").Success)

	totals := s.Totals()

	assert.Equal(t, "16.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "1.32", totals.Tax.StringFixed(2))
	assert.Equal(t, "17.32", totals.Total.StringFixed(2))
	assert.Equal(t, 2, totals.ItemCount)
}

func TestTotalsIncludeOptionModifiers(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	req := burgerRequest()
	req.SelectedOptions = map[string][]SelectedOption{
		"Toppings": {{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")}},
	}
	require.True(t, s.AddItem(context.Background(), req, 2, "").Success)

	totals := s.Totals()

	assert.Equal(t, "19.00", totals.Subtotal.StringFixed(2))
}

func TestTotalsEmptyCart(t *testing.T) {
	s := newTestStore(storage.NewMemoryStore())

	totals := s.Totals()

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Zero(t, totals.ItemCount)
}

func TestPersistenceFailureDoesNotFailMutation(t *testing.T) {
	s := newTestStore(failingStore{})

	result := s.AddItem(context.Background(), burgerRequest(), 1, "")

	require.True(t, result.Success)
	assert.Len(t, s.Items(), 1)
}

func TestRehydration(t *testing.T) {
	mem := storage.NewMemoryStore()

	s := newTestStore(mem)
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 2, "").Success)

	reloaded := newTestStore(mem)

	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "item-burger", reloaded.Items()[0].MenuItemID)
	assert.Equal(t, 2, reloaded.Items()[0].Quantity)
	assert.Equal(t, "loc-1", reloaded.LocationID())
}

func TestRehydrationCorruptPayload(t *testing.T) {
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), "cart:items:sess-1", "{not json"))

	s := newTestStore(mem)

	assert.Empty(t, s.Items())
}

func TestRehydrationDerivesMissingLocation(t *testing.T) {
	mem := storage.NewMemoryStore()

	s := newTestStore(mem)
	require.True(t, s.AddItem(context.Background(), burgerRequest(), 1, "").Success)
	require.NoError(t, mem.Delete(context.Background(), "cart:location:sess-1"))

	reloaded := newTestStore(mem)

	assert.Equal(t, "loc-1", reloaded.LocationID())
}

func TestOptionsMatch(t *testing.T) {
	bacon := SelectedOption{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")}
	cheese := SelectedOption{Name: "Cheese", PriceModifier: decimal.RequireFromString("0.75")}

	tests := []struct {
		name string
		a    map[string][]SelectedOption
		b    map[string][]SelectedOption
		want bool
	}{
		{
			name: "both empty",
			want: true,
		},
		{
			name: "order within group irrelevant",
			a:    map[string][]SelectedOption{"Toppings": {bacon, cheese}},
			b:    map[string][]SelectedOption{"Toppings": {cheese, bacon}},
			want: true,
		},
		{
			name: "different option sets",
			a:    map[string][]SelectedOption{"Toppings": {bacon}},
			b:    map[string][]SelectedOption{"Toppings": {cheese}},
			want: false,
		},
		{
			name: "duplicates count individually",
			a:    map[string][]SelectedOption{"Toppings": {bacon, bacon}},
			b:    map[string][]SelectedOption{"Toppings": {bacon}},
			want: false,
		},
		{
			name: "different groups",
			a:    map[string][]SelectedOption{"Toppings": {bacon}},
			b:    map[string][]SelectedOption{"Sauce": {bacon}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optionsMatch(tt.a, tt.b))
		})
	}
}

package order

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/checkout"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

type fakeIntents struct {
	intent     *checkout.Intent
	pending    string
	clearCalls int
}

func (f *fakeIntents) ConsumeIntent(context.Context, string) (*checkout.Intent, error) {
	intent := f.intent
	f.intent = nil
	return intent, nil
}

func (f *fakeIntents) PendingPaymentSession(context.Context, string) string {
	return f.pending
}

func (f *fakeIntents) ClearLoading(context.Context, string) {
	f.clearCalls++
}

type fakeCreator struct {
	createCalls int
	guestCalls  int
	lastToken   string
	lastReq     CreateOrderRequest
	order       *Order
	err         error
}

func (f *fakeCreator) Create(_ context.Context, accessToken string, req CreateOrderRequest) (*Order, error) {
	f.createCalls++
	f.lastToken = accessToken
	f.lastReq = req
	return f.order, f.err
}

func (f *fakeCreator) CreateGuest(_ context.Context, req CreateOrderRequest) (*Order, error) {
	f.guestCalls++
	f.lastReq = req
	return f.order, f.err
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestCart(t *testing.T) *cart.Store {
	t.Helper()
	crt := cart.NewStore(context.Background(), "sess-1", storage.NewMemoryStore(), testLogger(), decimal.RequireFromString("0.0825"))
	result := crt.AddItem(context.Background(), cart.AddItemRequest{
		MenuItemID: "item-burger",
		Name:       "Classic Burger",
		BasePrice:  decimal.RequireFromString("8.00"),
		LocationID: "loc-1",
	}, 2, "")
	require.True(t, result.Success)
	return crt
}

func stashedIntent() *checkout.Intent {
	return &checkout.Intent{
		CustomerInfo: checkout.CustomerInfo{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "555-0100",
		},
		CustomerID: "cust-1",
		LocationID: "loc-1",
		Items: []cart.LineItem{
			{
				CartID:     "item-burger-1",
				MenuItemID: "item-burger",
				Name:       "Classic Burger",
				BasePrice:  decimal.RequireFromString("8.00"),
				Quantity:   2,
				LocationID: "loc-1",
			},
		},
		Subtotal: decimal.RequireFromString("16.00"),
		Tax:      decimal.RequireFromString("1.32"),
		Total:    decimal.RequireFromString("17.32"),
	}
}

func TestCompleteCheckoutNoPaymentSession(t *testing.T) {
	svc := NewService(&fakeIntents{}, &fakeCreator{}, testLogger())
	crt := newTestCart(t)

	_, err := svc.CompleteCheckout(context.Background(), crt, nil, "", "")

	assert.ErrorIs(t, err, ErrNoPaymentSession)
}

func TestCompleteCheckoutAuthenticated(t *testing.T) {
	intents := &fakeIntents{intent: stashedIntent()}
	creator := &fakeCreator{order: &Order{ID: "ord-1", Total: decimal.RequireFromString("17.32")}}
	svc := NewService(intents, creator, testLogger())
	crt := newTestCart(t)

	ord, err := svc.CompleteCheckout(context.Background(), crt, &customer.Customer{ID: "cust-1"}, "token-1", "cs_123")

	require.NoError(t, err)
	assert.Equal(t, "ord-1", ord.ID)

	assert.Equal(t, 1, creator.createCalls)
	assert.Zero(t, creator.guestCalls)
	assert.Equal(t, "token-1", creator.lastToken)

	req := creator.lastReq
	assert.Equal(t, "loc-1", req.LocationID)
	assert.Equal(t, "cust-1", req.CustomerID)
	assert.Equal(t, "Ada Lovelace", req.CustomerName)
	assert.Equal(t, "cs_123", req.StripeSessionID)
	assert.Equal(t, "pending", req.PaymentStatus)
	assert.Equal(t, "online", req.PaymentMethod)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "8.00", req.Items[0].Price.StringFixed(2))
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "17.32", req.Total.StringFixed(2))

	// The cart resets only after the order exists
	assert.Empty(t, crt.Items())
	assert.Equal(t, 1, intents.clearCalls)
}

func TestCompleteCheckoutGuest(t *testing.T) {
	intent := stashedIntent()
	intent.IsGuest = true
	intent.CustomerID = ""
	intents := &fakeIntents{intent: intent}
	creator := &fakeCreator{order: &Order{ID: "ord-2", Total: decimal.RequireFromString("17.32")}}
	svc := NewService(intents, creator, testLogger())
	crt := newTestCart(t)

	_, err := svc.CompleteCheckout(context.Background(), crt, nil, "", "cs_123")

	require.NoError(t, err)
	assert.Zero(t, creator.createCalls)
	assert.Equal(t, 1, creator.guestCalls)
}

func TestCompleteCheckoutFallsBackToPendingSession(t *testing.T) {
	intents := &fakeIntents{intent: stashedIntent(), pending: "cs_pending"}
	creator := &fakeCreator{order: &Order{ID: "ord-3", Total: decimal.RequireFromString("17.32")}}
	svc := NewService(intents, creator, testLogger())
	crt := newTestCart(t)

	_, err := svc.CompleteCheckout(context.Background(), crt, &customer.Customer{ID: "cust-1"}, "token-1", "")

	require.NoError(t, err)
	assert.Equal(t, "cs_pending", creator.lastReq.StripeSessionID)
}

func TestCompleteCheckoutReconstructsFromLiveCart(t *testing.T) {
	intents := &fakeIntents{pending: "cs_123"}
	creator := &fakeCreator{order: &Order{ID: "ord-4", Total: decimal.RequireFromString("17.32")}}
	svc := NewService(intents, creator, testLogger())
	crt := newTestCart(t)

	_, err := svc.CompleteCheckout(context.Background(), crt, nil, "", "")

	require.NoError(t, err)
	assert.Equal(t, 1, creator.guestCalls)
	assert.Equal(t, "Guest Customer", creator.lastReq.CustomerName)
	assert.Equal(t, "loc-1", creator.lastReq.LocationID)
	assert.Equal(t, "17.32", creator.lastReq.Total.StringFixed(2))
}

func TestCompleteCheckoutNoOrderData(t *testing.T) {
	intents := &fakeIntents{pending: "cs_123"}
	svc := NewService(intents, &fakeCreator{}, testLogger())
	crt := cart.NewStore(context.Background(), "sess-1", storage.NewMemoryStore(), testLogger(), decimal.RequireFromString("0.0825"))

	_, err := svc.CompleteCheckout(context.Background(), crt, nil, "", "")

	assert.ErrorIs(t, err, ErrOrderDataUnavailable)
}

func TestCompleteCheckoutCreationFailureKeepsCart(t *testing.T) {
	intents := &fakeIntents{intent: stashedIntent()}
	creator := &fakeCreator{err: errors.New("backend unavailable")}
	svc := NewService(intents, creator, testLogger())
	crt := newTestCart(t)

	_, err := svc.CompleteCheckout(context.Background(), crt, &customer.Customer{ID: "cust-1"}, "token-1", "cs_123")

	require.Error(t, err)
	assert.Len(t, crt.Items(), 1)
	assert.Zero(t, intents.clearCalls)
}

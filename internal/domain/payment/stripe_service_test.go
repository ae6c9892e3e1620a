package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-storefront/internal/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Payment.BaseURL = baseURL
	cfg.Payment.SecretKey = "sk_test_123"
	cfg.Payment.SuccessURL = "https://shop.example.com/order-success"
	cfg.Payment.CancelURL = "https://shop.example.com/cart"
	cfg.Payment.Timeout = 5 * time.Second
	return cfg
}

func TestCreateCheckoutSession(t *testing.T) {
	var captured CreateCheckoutSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/create-checkout-session", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessionId":"cs_123","url":"https://pay.example.com/cs_123"}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))

	session, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{
		Amount:   1732,
		Currency: "usd",
		Items: []CheckoutSessionItem{
			{MenuItemID: "item-burger", Name: "Classic Burger", Price: "8.00", Quantity: 2},
		},
		LocationID: "loc-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_123", session.RedirectURL)

	// Configured return URLs are filled in when the caller leaves them empty
	assert.Equal(t, "https://shop.example.com/order-success", captured.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cart", captured.CancelURL)
}

func TestCreateCheckoutSessionRejectsNonPositiveAmount(t *testing.T) {
	svc := NewStripeService(testConfig("http://unused"))

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{Amount: 0})

	assert.Error(t, err)
}

func TestCreateCheckoutSessionIncompleteResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sessionId":"cs_123"}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{Amount: 1732})

	assert.Error(t, err)
}

func TestCreateCheckoutSessionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"gateway unavailable"}`, http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))

	_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutSessionRequest{Amount: 1732})

	assert.Error(t, err)
}

func TestVerifyPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-payment", r.URL.Path)
		w.Write([]byte(`{"verified":true,"paymentStatus":"paid"}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))

	result, err := svc.VerifyPayment(context.Background(), "cs_123", "ord-1")

	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "paid", result.PaymentStatus)
}

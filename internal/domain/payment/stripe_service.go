// internal/domain/payment/stripe_service.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/your-org/restaurant-storefront/internal/config"
)

// StripeService talks to the platform's payment endpoints, which wrap Stripe
// Checkout. This service never captures payments itself; it only obtains
// hosted checkout sessions and verifies their outcome.
type StripeService struct {
	config     *config.Config
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewStripeService creates a new Stripe payment service
func NewStripeService(cfg *config.Config) *StripeService {
	return &StripeService{
		config:    cfg,
		baseURL:   cfg.Payment.BaseURL,
		secretKey: cfg.Payment.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Payment.Timeout,
		},
	}
}

// CheckoutSessionItem is one cart line forwarded to the hosted checkout page
type CheckoutSessionItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
}

// CustomerInfo identifies the paying customer on the checkout session
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateCheckoutSessionRequest is the payment collaborator's input: the
// amount in minor units plus the context the processor shows and records.
type CreateCheckoutSessionRequest struct {
	Amount       int64                 `json:"amount"`
	Currency     string                `json:"currency"`
	CustomerInfo CustomerInfo          `json:"customerInfo"`
	Items        []CheckoutSessionItem `json:"items"`
	LocationID   string                `json:"locationId"`
	Notes        string                `json:"notes"`
	SuccessURL   string                `json:"successUrl,omitempty"`
	CancelURL    string                `json:"cancelUrl,omitempty"`
}

// CheckoutSession is the hosted checkout handle: an opaque session id and
// the URL the browser must navigate to.
type CheckoutSession struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"url"`
}

// VerifyPaymentResponse reports a session's payment outcome
type VerifyPaymentResponse struct {
	Verified      bool   `json:"verified"`
	PaymentStatus string `json:"paymentStatus"`
}

// CreateCheckoutSession obtains a hosted checkout session for the given
// amount. Called at most once per user-initiated checkout; the caller
// enforces that with its loading flag.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid checkout amount: %d", req.Amount)
	}

	if req.SuccessURL == "" {
		req.SuccessURL = s.config.Payment.SuccessURL
	}
	if req.CancelURL == "" {
		req.CancelURL = s.config.Payment.CancelURL
	}

	body, err := s.doRequest(ctx, http.MethodPost, "/create-checkout-session", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session response: %w", err)
	}

	if session.SessionID == "" || session.RedirectURL == "" {
		return nil, fmt.Errorf("incomplete checkout session response")
	}

	return &session, nil
}

// VerifyPayment checks the payment outcome of a checkout session after the
// customer returns from the hosted page.
func (s *StripeService) VerifyPayment(ctx context.Context, sessionID, orderID string) (*VerifyPaymentResponse, error) {
	payload := map[string]string{
		"sessionId": sessionID,
		"orderId":   orderID,
	}

	body, err := s.doRequest(ctx, http.MethodPost, "/verify-payment", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	var result VerifyPaymentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse payment verification response: %w", err)
	}

	return &result, nil
}

// doRequest makes an HTTP call to the payment API
func (s *StripeService) doRequest(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	var reqBody []byte
	var err error

	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.secretKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API call failed with status %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}

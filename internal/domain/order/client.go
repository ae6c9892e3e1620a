// internal/domain/order/client.go
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/your-org/restaurant-storefront/internal/config"
)

// Client calls the platform's order API. Orders are persisted by the
// backend; authenticated creation links the order to the customer account,
// guest creation does not.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new order API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}
}

// Create creates an order linked to the authenticated customer
func (c *Client) Create(ctx context.Context, accessToken string, req CreateOrderRequest) (*Order, error) {
	return c.post(ctx, "/orders", accessToken, req)
}

// CreateGuest creates an order without a customer account
func (c *Client) CreateGuest(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	return c.post(ctx, "/orders/guest", "", req)
}

// Get retrieves an order by id
func (c *Client) Get(ctx context.Context, accessToken, orderID string) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/"+orderID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.do(req)
}

func (c *Client) post(ctx context.Context, endpoint, accessToken string, payload CreateOrderRequest) (*Order, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Order, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order API call failed: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("order API returned status %d: %s", resp.StatusCode, respBody.String())
	}

	var ord Order
	if err := json.Unmarshal(respBody.Bytes(), &ord); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}

	return &ord, nil
}

// internal/domain/menu/client.go
package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/config"
)

// Client reads location menus from the platform API, caching each menu in
// Redis for a short TTL. Menus are read-only input to cart population; all
// menu management happens in the backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *logrus.Logger
}

// NewClient creates a new menu API client
func NewClient(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
		redisClient: redisClient,
		cacheTTL:    cfg.Cart.MenuCacheTTL,
		logger:      logger,
	}
}

// GetMenu returns a location's menu, from cache when fresh
func (c *Client) GetMenu(ctx context.Context, locationID string) (*Menu, error) {
	cacheKey := "menu:" + locationID

	if c.redisClient != nil {
		if cached, err := c.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var m Menu
			if err := json.Unmarshal([]byte(cached), &m); err == nil {
				return &m, nil
			}
			// Stale or corrupt cache entry, fall through to the API
		}
	}

	body, err := c.get(ctx, fmt.Sprintf("/menu/%s", locationID))
	if err != nil {
		return nil, err
	}

	var m Menu
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("failed to parse menu response: %w", err)
	}
	m.LocationID = locationID

	if c.redisClient != nil {
		if data, err := json.Marshal(&m); err == nil {
			if err := c.redisClient.Set(ctx, cacheKey, data, c.cacheTTL).Err(); err != nil {
				c.logger.WithError(err).WithField("location_id", locationID).
					Warn("Failed to cache menu")
			}
		}
	}

	return &m, nil
}

// GetItem returns a single menu item with its option groups
func (c *Client) GetItem(ctx context.Context, locationID, itemID string) (*Item, error) {
	m, err := c.GetMenu(ctx, locationID)
	if err != nil {
		return nil, err
	}

	for i := range m.Items {
		if m.Items[i].ID == itemID {
			return &m.Items[i], nil
		}
	}

	return nil, fmt.Errorf("menu item %s not found at location %s", itemID, locationID)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu API call failed: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read menu response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("menu API returned status %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}

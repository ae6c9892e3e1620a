// internal/domain/location/service.go
package location

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

// ErrLocationNotFound is returned when a location id is unknown
var ErrLocationNotFound = errors.New("location not found")

// Service supplies the list of valid locations and tracks each session's
// currently selected location, which the cart uses as the ambient fallback
// when an add-to-cart candidate carries no location of its own.
type Service struct {
	baseURL    string
	httpClient *http.Client
	durable    storage.Store
	logger     *logrus.Logger
}

// NewService creates a new location service
func NewService(cfg *config.Config, durable storage.Store, logger *logrus.Logger) *Service {
	return &Service{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
		durable: durable,
		logger:  logger,
	}
}

// List returns all active locations
func (s *Service) List(ctx context.Context) ([]Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/locations", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location API call failed: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read location response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("location API returned status %d: %s", resp.StatusCode, respBody.String())
	}

	var locations []Location
	if err := json.Unmarshal(respBody.Bytes(), &locations); err != nil {
		return nil, fmt.Errorf("failed to parse location response: %w", err)
	}

	return locations, nil
}

// Get returns one location by id
func (s *Service) Get(ctx context.Context, locationID string) (*Location, error) {
	locations, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range locations {
		if locations[i].ID == locationID {
			return &locations[i], nil
		}
	}

	return nil, ErrLocationNotFound
}

// Select sets the session's current location. The cart's location guard is
// consulted first: switching away from a non-empty cart's committed location
// is refused with the guard's message.
func (s *Service) Select(ctx context.Context, crt *cart.Store, locationID string) cart.Validation {
	validation := crt.ValidateLocation(locationID)
	if !validation.Valid {
		return validation
	}

	if err := s.durable.Set(ctx, selectedKey(crt.SessionID()), locationID); err != nil {
		s.logger.WithError(err).WithField("session_id", crt.SessionID()).
			Error("Failed to persist selected location")
	}

	return validation
}

// Selected returns the session's currently selected location id, or ""
func (s *Service) Selected(ctx context.Context, sessionID string) string {
	locationID, err := s.durable.Get(ctx, selectedKey(sessionID))
	if err != nil {
		return ""
	}
	return locationID
}

func selectedKey(sessionID string) string {
	return "location:selected:" + sessionID
}

// internal/domain/checkout/resume.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

// NavigationIntent is carried across a login detour: what the customer was
// trying to do when authentication interrupted them.
type NavigationIntent struct {
	TriggerCheckout bool `json:"trigger_checkout"`
	OpenCart        bool `json:"open_cart"`
}

// ResumeOutcome tells the shell what to do after the detour: navigate to the
// payment page, open the cart panel, or nothing.
type ResumeOutcome struct {
	CheckedOut  bool   `json:"checked_out"`
	RedirectURL string `json:"redirect_url,omitempty"`
	OpenCart    bool   `json:"open_cart"`
	Error       string `json:"error,omitempty"`
}

// StashNavigationIntent records what to resume after the login detour
func (s *Service) StashNavigationIntent(ctx context.Context, sessionID string, intent NavigationIntent) {
	data, err := json.Marshal(intent)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to encode navigation intent")
		return
	}

	if err := s.ephemeral.Set(ctx, navigationKey(sessionID), string(data)); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to stash navigation intent")
	}
}

// consumeNavigationIntent reads and immediately clears the carried intent so
// it cannot re-trigger on a later arrival.
func (s *Service) consumeNavigationIntent(ctx context.Context, sessionID string) *NavigationIntent {
	data, err := s.ephemeral.Get(ctx, navigationKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to read navigation intent")
		return nil
	}

	if err := s.ephemeral.Delete(ctx, navigationKey(sessionID)); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to clear navigation intent")
	}

	var intent NavigationIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil
	}
	return &intent
}

// Resume handles arrival at the shell after an interrupted flow. A carried
// trigger-checkout intent with an authenticated customer re-invokes the
// handoff immediately; on failure the cart panel surfaces with the error and
// no automatic retry. A plain open-cart intent just opens the panel. The
// intent is consumed exactly once either way.
func (s *Service) Resume(ctx context.Context, crt *cart.Store, cust *customer.Customer) ResumeOutcome {
	nav := s.consumeNavigationIntent(ctx, crt.SessionID())
	if nav == nil {
		return ResumeOutcome{}
	}

	if nav.TriggerCheckout && cust != nil {
		result := s.TriggerCheckout(ctx, crt, cust, "")
		if result.Success {
			return ResumeOutcome{
				CheckedOut:  true,
				RedirectURL: result.RedirectURL,
			}
		}
		s.ClearLoading(ctx, crt.SessionID())
		return ResumeOutcome{
			OpenCart: true,
			Error:    result.Error,
		}
	}

	if nav.TriggerCheckout || nav.OpenCart {
		return ResumeOutcome{OpenCart: true}
	}

	return ResumeOutcome{}
}

func navigationKey(sessionID string) string {
	return "checkout:nav:" + sessionID
}

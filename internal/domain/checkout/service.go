// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
	"github.com/your-org/restaurant-storefront/internal/domain/payment"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

// Precondition errors surfaced verbatim to the UI, checked in this order.
const (
	ErrNotAuthenticated = "User not authenticated"
	ErrNoLocation       = "No location selected"
	ErrCartEmpty        = "Cart is empty"
	ErrCheckoutFailed   = "Unable to start checkout. Please try again."
	ErrCheckoutInFlight = "Checkout is already in progress"
)

// minorUnits converts a display amount to the processor's integer minor units
const minorUnits = 100

// PaymentProvider is the payment collaborator consumed by the handoff
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req payment.CreateCheckoutSessionRequest) (*payment.CheckoutSession, error)
}

// Result is the outcome of a checkout trigger. On success RedirectURL is the
// hosted payment page the browser must navigate to.
type Result struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Service drives the checkout handoff: it validates preconditions, obtains a
// hosted checkout session from the payment collaborator, stashes a resumable
// snapshot in the ephemeral store and hands the redirect URL to the caller.
type Service struct {
	payments  PaymentProvider
	ephemeral storage.Store
	currency  string
	logger    *logrus.Logger
}

// NewService creates a new checkout service
func NewService(payments PaymentProvider, ephemeral storage.Store, currency string, logger *logrus.Logger) *Service {
	return &Service{
		payments:  payments,
		ephemeral: ephemeral,
		currency:  currency,
		logger:    logger,
	}
}

// TriggerCheckout starts the handoff for one user-initiated checkout click.
// Preconditions short-circuit with distinct errors before any network call.
// The loading flag is set for the whole attempt and deliberately left set on
// success: the page is about to navigate away, and clearing it early would
// re-enable the control for a duplicate session. Failure always clears it.
func (s *Service) TriggerCheckout(ctx context.Context, crt *cart.Store, cust *customer.Customer, notes string) Result {
	if cust == nil {
		return Result{Success: false, Error: ErrNotAuthenticated}
	}

	locationID := crt.LocationID()
	if locationID == "" {
		return Result{Success: false, Error: ErrNoLocation}
	}

	items := crt.Items()
	if len(items) == 0 {
		return Result{Success: false, Error: ErrCartEmpty}
	}

	sessionID := crt.SessionID()
	s.setLoading(ctx, sessionID)

	totals := crt.Totals()
	info := buildCustomerInfo(cust, notes)
	amount := totals.Total.Mul(decimal.NewFromInt(minorUnits)).Round(0).IntPart()

	sessionItems := make([]payment.CheckoutSessionItem, len(items))
	for i, item := range items {
		sessionItems[i] = payment.CheckoutSessionItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      cart.EffectivePrice(item).Round(2).String(),
			Quantity:   item.Quantity,
		}
	}

	session, err := s.payments.CreateCheckoutSession(ctx, payment.CreateCheckoutSessionRequest{
		Amount:   amount,
		Currency: s.currency,
		CustomerInfo: payment.CustomerInfo{
			Name:  info.Name,
			Email: info.Email,
			Phone: info.Phone,
		},
		Items:      sessionItems,
		LocationID: locationID,
		Notes:      info.Notes,
	})
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Checkout session creation failed")
		s.ClearLoading(ctx, sessionID)
		return Result{Success: false, Error: ErrCheckoutFailed}
	}

	intent := Intent{
		CustomerInfo: info,
		CustomerID:   cust.ID,
		LocationID:   locationID,
		Items:        items,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
		IsGuest:      false,
	}
	s.stashIntent(ctx, sessionID, session.SessionID, intent)

	return Result{
		Success:     true,
		SessionID:   session.SessionID,
		RedirectURL: session.RedirectURL,
	}
}

// IsCheckoutLoading reports whether a checkout attempt is in flight for the
// session. Callers must disable the checkout control while it is true.
func (s *Service) IsCheckoutLoading(ctx context.Context, sessionID string) bool {
	_, err := s.ephemeral.Get(ctx, loadingKey(sessionID))
	return err == nil
}

// ClearLoading re-enables checkout for the session
func (s *Service) ClearLoading(ctx context.Context, sessionID string) {
	if err := s.ephemeral.Delete(ctx, loadingKey(sessionID)); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to clear checkout loading flag")
	}
}

// ConsumeIntent reads and deletes the stashed checkout snapshot. The second
// call for the same session reports no intent.
func (s *Service) ConsumeIntent(ctx context.Context, sessionID string) (*Intent, error) {
	data, err := s.ephemeral.Get(ctx, intentKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Delete before use so an interrupted consumer cannot replay it
	if err := s.ephemeral.Delete(ctx, intentKey(sessionID), paymentSessionKey(sessionID)); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to delete consumed checkout intent")
	}

	var intent Intent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// PendingPaymentSession returns the stashed hosted-checkout session id, if any
func (s *Service) PendingPaymentSession(ctx context.Context, sessionID string) string {
	id, err := s.ephemeral.Get(ctx, paymentSessionKey(sessionID))
	if err != nil {
		return ""
	}
	return id
}

func (s *Service) setLoading(ctx context.Context, sessionID string) {
	if err := s.ephemeral.Set(ctx, loadingKey(sessionID), "1"); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to set checkout loading flag")
	}
}

func (s *Service) stashIntent(ctx context.Context, sessionID, paymentSessionID string, intent Intent) {
	data, err := json.Marshal(intent)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to encode checkout intent")
		return
	}

	if err := s.ephemeral.Set(ctx, intentKey(sessionID), string(data)); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to stash checkout intent")
	}
	if err := s.ephemeral.Set(ctx, paymentSessionKey(sessionID), paymentSessionID); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to stash payment session id")
	}
}

func loadingKey(sessionID string) string {
	return "checkout:loading:" + sessionID
}

func intentKey(sessionID string) string {
	return "checkout:intent:" + sessionID
}

func paymentSessionKey(sessionID string) string {
	return "checkout:payment_session:" + sessionID
}

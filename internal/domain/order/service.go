// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/checkout"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
)

// ErrNoPaymentSession means the return handler was reached without a hosted
// checkout session to settle.
var ErrNoPaymentSession = errors.New("no pending payment session")

// ErrOrderDataUnavailable means neither the stashed snapshot nor the live
// cart can reconstruct the order. The customer is pointed at their email
// confirmation instead.
var ErrOrderDataUnavailable = errors.New("order information unavailable")

// IntentSource yields the checkout snapshot stashed before the payment
// redirect. Implemented by the checkout service.
type IntentSource interface {
	ConsumeIntent(ctx context.Context, sessionID string) (*checkout.Intent, error)
	PendingPaymentSession(ctx context.Context, sessionID string) string
	ClearLoading(ctx context.Context, sessionID string)
}

// Creator creates durable orders through the platform API
type Creator interface {
	Create(ctx context.Context, accessToken string, req CreateOrderRequest) (*Order, error)
	CreateGuest(ctx context.Context, req CreateOrderRequest) (*Order, error)
}

// Service is the post-payment return handler: it turns the stashed checkout
// snapshot into a durable order once the customer comes back from the hosted
// payment page, then resets the cart. Payment verification itself happens on
// the backend via the processor's webhook.
type Service struct {
	intents IntentSource
	orders  Creator
	logger  *logrus.Logger
}

// NewService creates a new order service
func NewService(intents IntentSource, orders Creator, logger *logrus.Logger) *Service {
	return &Service{
		intents: intents,
		orders:  orders,
		logger:  logger,
	}
}

// CompleteCheckout consumes the stashed snapshot and creates the order. When
// the ephemeral snapshot is gone (new tab, expired storage) it falls back to
// reconstructing the order from the live cart and the authenticated
// customer; with neither available it fails with ErrOrderDataUnavailable.
// The cart is cleared only after the order is created.
func (s *Service) CompleteCheckout(ctx context.Context, crt *cart.Store, cust *customer.Customer, accessToken, paymentSessionID string) (*Order, error) {
	sessionID := crt.SessionID()

	if paymentSessionID == "" {
		paymentSessionID = s.intents.PendingPaymentSession(ctx, sessionID)
	}
	if paymentSessionID == "" {
		return nil, ErrNoPaymentSession
	}

	intent, err := s.intents.ConsumeIntent(ctx, sessionID)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to consume checkout intent")
	}
	if intent == nil {
		intent = s.reconstructIntent(crt, cust)
	}
	if intent == nil {
		return nil, ErrOrderDataUnavailable
	}

	req := CreateOrderRequest{
		LocationID:      intent.LocationID,
		CustomerID:      intent.CustomerID,
		CustomerName:    intent.CustomerInfo.Name,
		CustomerEmail:   intent.CustomerInfo.Email,
		CustomerPhone:   intent.CustomerInfo.Phone,
		Items:           orderItems(intent.Items),
		Subtotal:        intent.Subtotal,
		Tax:             intent.Tax,
		Total:           intent.Total,
		StripeSessionID: paymentSessionID,
		PaymentStatus:   "pending",
		PaymentMethod:   "online",
		Notes:           intent.CustomerInfo.Notes,
	}

	var ord *Order
	if !intent.IsGuest && accessToken != "" {
		ord, err = s.orders.Create(ctx, accessToken, req)
	} else {
		ord, err = s.orders.CreateGuest(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	crt.Clear(ctx)
	s.intents.ClearLoading(ctx, sessionID)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"order_id":   ord.ID,
		"total":      ord.Total.String(),
	}).Info("Order created from completed checkout")

	return ord, nil
}

// reconstructIntent rebuilds the snapshot from the live cart when the
// ephemeral copy is lost. Returns nil when the cart is empty too.
func (s *Service) reconstructIntent(crt *cart.Store, cust *customer.Customer) *checkout.Intent {
	items := crt.Items()
	if len(items) == 0 {
		return nil
	}

	totals := crt.Totals()
	intent := &checkout.Intent{
		LocationID: crt.LocationID(),
		Items:      items,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		IsGuest:    cust == nil,
	}

	if cust != nil {
		intent.CustomerID = cust.ID
		intent.CustomerInfo = checkout.CustomerInfo{
			Name:  cust.DisplayName(),
			Email: cust.Email,
			Phone: cust.ContactPhone(),
		}
	} else {
		intent.CustomerInfo = checkout.CustomerInfo{Name: "Guest Customer"}
	}

	s.logger.WithField("session_id", crt.SessionID()).
		Warn("Checkout intent missing, reconstructed order from live cart")

	return intent
}

// orderItems converts cart entries to order lines, pricing each at its
// effective unit price so line totals sum to the recorded subtotal.
func orderItems(items []cart.LineItem) []Item {
	lines := make([]Item, len(items))
	for i, item := range items {
		lines[i] = Item{
			ItemID:   item.MenuItemID,
			Name:     item.Name,
			Price:    cart.EffectivePrice(item).Round(2),
			Quantity: item.Quantity,
		}
	}
	return lines
}

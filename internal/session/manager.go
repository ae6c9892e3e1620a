// internal/session/manager.go
package session

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

// Manager hands out each session's cart store, creating and rehydrating it
// on first access. A session keeps the same store for its lifetime, which
// preserves the cart's single-writer semantics across requests.
type Manager struct {
	mu      sync.Mutex
	carts   map[string]*cart.Store
	durable storage.Store
	logger  *logrus.Logger
	taxRate decimal.Decimal
}

// NewManager creates a new session manager
func NewManager(durable storage.Store, logger *logrus.Logger, taxRate decimal.Decimal) *Manager {
	return &Manager{
		carts:   make(map[string]*cart.Store),
		durable: durable,
		logger:  logger,
		taxRate: taxRate,
	}
}

// Cart returns the session's cart store, rehydrating persisted state on
// first access.
func (m *Manager) Cart(ctx context.Context, sessionID string) *cart.Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if crt, ok := m.carts[sessionID]; ok {
		return crt
	}

	crt := cart.NewStore(ctx, sessionID, m.durable, m.logger, m.taxRate)
	m.carts[sessionID] = crt
	return crt
}

// Evict drops the cached store for a session. Persisted state, if any,
// is rehydrated on the next access.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}

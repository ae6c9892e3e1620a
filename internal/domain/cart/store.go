// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

// NoLocationMessage is returned when an add-to-cart candidate carries no
// location and no ambient location is selected either.
const NoLocationMessage = "No location selected. Please choose a location first."

// Store owns one session's cart: the line items and the location the cart is
// committed to. It is the single writer for that state; the mutex stands in
// for the UI event loop that serialized mutations in the browser. Every
// mutation persists the full state to the storage port before returning, so
// a reload reconstructs identical state. Persistence failures are logged and
// swallowed: the in-memory state stays authoritative for the session.
type Store struct {
	mu         sync.Mutex
	sessionID  string
	items      []LineItem
	locationID string

	storage storage.Store
	logger  *logrus.Logger
	taxRate decimal.Decimal
}

// NewStore creates a cart store for the session, rehydrating any previously
// persisted items and committed location. Corrupt payloads are logged and
// treated as an empty cart.
func NewStore(ctx context.Context, sessionID string, st storage.Store, logger *logrus.Logger, taxRate decimal.Decimal) *Store {
	s := &Store{
		sessionID: sessionID,
		storage:   st,
		logger:    logger,
		taxRate:   taxRate,
	}

	if data, err := st.Get(ctx, s.itemsKey()); err == nil {
		if err := json.Unmarshal([]byte(data), &s.items); err != nil {
			logger.WithError(err).WithField("session_id", sessionID).
				Error("Failed to decode persisted cart, starting empty")
			s.items = nil
		}
	}

	if loc, err := st.Get(ctx, s.locationKey()); err == nil {
		s.locationID = loc
	}

	// The committed location must be set whenever the cart is non-empty
	if s.locationID == "" && len(s.items) > 0 {
		s.locationID = s.items[0].LocationID
	}

	return s
}

// SessionID returns the owning session's identifier
func (s *Store) SessionID() string {
	return s.sessionID
}

// AddItem adds a candidate to the cart. The candidate's target location is
// its own location id, falling back to the ambient selected location. When an
// entry with the same menu item and the same option selections already
// exists, its quantity is incremented instead of appending a duplicate.
func (s *Store) AddItem(ctx context.Context, req AddItemRequest, quantity int, ambientLocationID string) Result {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	targetLocation := req.LocationID
	if targetLocation == "" {
		targetLocation = ambientLocationID
	}
	if targetLocation == "" {
		return Result{Success: false, Error: NoLocationMessage}
	}

	validation := validateLocation(len(s.items), s.locationID, targetLocation)
	if !validation.Valid {
		return Result{Success: false, Error: validation.Message}
	}

	merged := false
	for i := range s.items {
		if s.items[i].MenuItemID == req.MenuItemID && optionsMatch(s.items[i].SelectedOptions, req.SelectedOptions) {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		s.items = append(s.items, LineItem{
			CartID:          req.MenuItemID + "-" + uuid.New().String(),
			MenuItemID:      req.MenuItemID,
			Name:            req.Name,
			BasePrice:       req.BasePrice,
			Quantity:        quantity,
			LocationID:      targetLocation,
			Emoji:           req.Emoji,
			ImageURL:        req.ImageURL,
			SelectedOptions: req.SelectedOptions,
		})
	}

	// Commit the location when the cart transitions from empty to non-empty
	if s.locationID == "" {
		s.locationID = targetLocation
	}

	s.persist(ctx)
	return Result{Success: true}
}

// UpdateQuantity replaces the quantity of the entry with the given cart id.
// A quantity of zero or less removes the entry. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, cartID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, cartID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].CartID == cartID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// RemoveItem removes every entry matching the given id by cart id or by menu
// item id. Removal by menu item id drops all customized variants of that
// item at once. Emptying the cart clears the committed location.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.items[:0]
	for _, item := range s.items {
		if item.CartID != id && item.MenuItemID != id {
			remaining = append(remaining, item)
		}
	}
	s.items = remaining

	if len(s.items) == 0 {
		s.items = nil
		s.locationID = ""
	}

	s.persist(ctx)
}

// Clear empties the cart, clears the committed location and purges both
// persisted keys.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.locationID = ""

	if err := s.storage.Delete(ctx, s.itemsKey(), s.locationKey()); err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to purge persisted cart")
	}
}

// Items returns a copy of the cart's line items in insertion order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// LocationID returns the location the cart is committed to, or "" when empty
func (s *Store) LocationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locationID
}

// Item returns the first entry for the given menu item id
func (s *Store) Item(menuItemID string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.MenuItemID == menuItemID {
			return item, true
		}
	}
	return LineItem{}, false
}

// ItemsByMenuID returns every entry for the given menu item id, one per
// distinct option selection.
func (s *Store) ItemsByMenuID(menuItemID string) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []LineItem
	for _, item := range s.items {
		if item.MenuItemID == menuItemID {
			matches = append(matches, item)
		}
	}
	return matches
}

// ValidateLocation reports whether a mutation targeting the candidate
// location would be accepted. Consulted by location-switch controls before
// switching; never mutates state.
func (s *Store) ValidateLocation(candidateLocationID string) Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validateLocation(len(s.items), s.locationID, candidateLocationID)
}

// Totals recomputes the derived monetary totals from the current items.
// Subtotal accumulates exact decimals; tax is subtotal times the configured
// rate rounded to cents; total is their sum.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	count := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(EffectivePrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(s.taxRate).Round(2)

	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		ItemCount: count,
	}
}

// persist writes the full items array and committed location to storage.
// Callers hold the mutex. Failures are logged and swallowed: losing
// durability is less harmful than failing an in-progress order.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to encode cart for persistence")
		return
	}

	if err := s.storage.Set(ctx, s.itemsKey(), string(data)); err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to persist cart items")
	}

	if s.locationID != "" {
		if err := s.storage.Set(ctx, s.locationKey(), s.locationID); err != nil {
			s.logger.WithError(err).WithField("session_id", s.sessionID).
				Error("Failed to persist cart location")
		}
	} else {
		if err := s.storage.Delete(ctx, s.locationKey()); err != nil {
			s.logger.WithError(err).WithField("session_id", s.sessionID).
				Error("Failed to remove persisted cart location")
		}
	}
}

func (s *Store) itemsKey() string {
	return "cart:items:" + s.sessionID
}

func (s *Store) locationKey() string {
	return "cart:location:" + s.sessionID
}

// optionsMatch reports whether two option selections are the same: the same
// set of group names and, per group, the same multiset of option names.
// Order within a group never matters; duplicate names count individually.
func optionsMatch(a, b map[string][]SelectedOption) bool {
	if len(a) != len(b) {
		return false
	}

	for group, options := range a {
		others, ok := b[group]
		if !ok {
			return false
		}
		if !sameNameMultiset(options, others) {
			return false
		}
	}

	return true
}

func sameNameMultiset(a, b []SelectedOption) bool {
	if len(a) != len(b) {
		return false
	}

	namesA := make([]string, len(a))
	namesB := make([]string, len(b))
	for i := range a {
		namesA[i] = a[i].Name
		namesB[i] = b[i].Name
	}
	sort.Strings(namesA)
	sort.Strings(namesB)

	for i := range namesA {
		if namesA[i] != namesB[i] {
			return false
		}
	}
	return true
}

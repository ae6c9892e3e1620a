// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
)

// SelectedOption is one chosen option within an option group
type SelectedOption struct {
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
}

// LineItem represents a single cart entry. CartID identifies the entry, not
// the catalog item: the same menu item with different option selections
// occupies separate entries.
type LineItem struct {
	CartID          string                      `json:"cart_id"`
	MenuItemID      string                      `json:"menu_item_id"`
	Name            string                      `json:"name"`
	BasePrice       decimal.Decimal             `json:"price"`
	Quantity        int                         `json:"quantity"`
	LocationID      string                      `json:"location_id"`
	Emoji           string                      `json:"emoji,omitempty"`
	ImageURL        string                      `json:"image_url,omitempty"`
	SelectedOptions map[string][]SelectedOption `json:"options,omitempty"`
}

// Totals represents calculated cart totals. Subtotal, tax and total are
// rounded to two decimal places for display.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// AddItemRequest represents an add-to-cart candidate. LocationID may be
// empty, in which case the caller's currently selected location is used.
type AddItemRequest struct {
	MenuItemID      string                      `json:"menu_item_id" binding:"required"`
	Name            string                      `json:"name" binding:"required"`
	BasePrice       decimal.Decimal             `json:"price"`
	Quantity        int                         `json:"quantity"`
	LocationID      string                      `json:"location_id"`
	Emoji           string                      `json:"emoji"`
	ImageURL        string                      `json:"image_url"`
	SelectedOptions map[string][]SelectedOption `json:"options"`
}

// UpdateQuantityRequest replaces a cart entry's quantity. Zero removes the
// entry.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Result is the outcome of a cart mutation, consumed by the UI verbatim
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

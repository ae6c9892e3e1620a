// internal/domain/menu/entity.go
package menu

import (
	"github.com/shopspring/decimal"
)

// Category groups menu items for display. Each location has its own
// categories and items.
type Category struct {
	ID           string `json:"id"`
	LocationID   string `json:"location_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Emoji        string `json:"emoji,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// Item is a purchasable menu item with its option groups
type Item struct {
	ID           string          `json:"id"`
	LocationID   string          `json:"location_id"`
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Emoji        string          `json:"emoji,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	IsAvailable  bool            `json:"is_available"`
	DisplayOrder int             `json:"display_order"`
	OptionGroups []OptionGroup   `json:"option_groups,omitempty"`
}

// OptionGroup is a customization choice on a menu item (Size, Toppings, ...)
type OptionGroup struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Required      bool     `json:"required"`
	MaxSelections int      `json:"max_selections"`
	DisplayOrder  int      `json:"display_order"`
	Options       []Option `json:"options"`
}

// Option is one selectable option within a group. PriceModifier adjusts the
// item's base price and may be negative.
type Option struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	IsDefault     bool            `json:"is_default"`
	DisplayOrder  int             `json:"display_order"`
}

// Menu is one location's full menu
type Menu struct {
	LocationID string     `json:"location_id"`
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}

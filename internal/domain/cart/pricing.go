// internal/domain/cart/pricing.go
package cart

import (
	"github.com/shopspring/decimal"
)

// EffectivePrice computes the unit price of a line item: its base price plus
// every selected option's modifier. Modifiers may be negative. A missing
// option set contributes nothing; the zero value of a modifier is zero, so
// absent modifiers cost nothing. Pure, never fails.
func EffectivePrice(item LineItem) decimal.Decimal {
	price := item.BasePrice

	for _, group := range item.SelectedOptions {
		for _, option := range group {
			price = price.Add(option.PriceModifier)
		}
	}

	return price
}

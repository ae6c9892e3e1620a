package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePriceBaseOnly(t *testing.T) {
	item := LineItem{BasePrice: decimal.RequireFromString("6.50")}

	assert.True(t, decimal.RequireFromString("6.50").Equal(EffectivePrice(item)))
}

func TestEffectivePriceSumsModifiers(t *testing.T) {
	item := LineItem{
		BasePrice: decimal.RequireFromString("8.00"),
		SelectedOptions: map[string][]SelectedOption{
			"Size": {
				{Name: "Large", PriceModifier: decimal.RequireFromString("2.00")},
			},
			"Toppings": {
				{Name: "Bacon", PriceModifier: decimal.RequireFromString("1.50")},
				{Name: "Avocado", PriceModifier: decimal.RequireFromString("1.25")},
			},
		},
	}

	assert.True(t, decimal.RequireFromString("12.75").Equal(EffectivePrice(item)))
}

func TestEffectivePriceNegativeModifier(t *testing.T) {
	item := LineItem{
		BasePrice: decimal.RequireFromString("10.00"),
		SelectedOptions: map[string][]SelectedOption{
			"Size": {
				{Name: "Small", PriceModifier: decimal.RequireFromString("-1.50")},
			},
		},
	}

	assert.True(t, decimal.RequireFromString("8.50").Equal(EffectivePrice(item)))
}

func TestEffectivePriceZeroModifiers(t *testing.T) {
	item := LineItem{
		BasePrice: decimal.RequireFromString("4.25"),
		SelectedOptions: map[string][]SelectedOption{
			"Sauce": {
				{Name: "Ketchup"},
				{Name: "Mustard"},
			},
		},
	}

	assert.True(t, decimal.RequireFromString("4.25").Equal(EffectivePrice(item)))
}

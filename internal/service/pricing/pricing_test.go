package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		items    []orderitem.OrderItem
		rate     string
		subtotal string
		tax      string
		total    string
	}{
		{
			name: "two lines at default rate",
			items: []orderitem.OrderItem{
				{Quantity: 2, UnitPrice: dec("29.99")},
				{Quantity: 1, UnitPrice: dec("9.99")},
			},
			rate:     "0.0825",
			subtotal: "69.97",
			tax:      "5.77",
			total:    "75.74",
		},
		{
			name: "single line",
			items: []orderitem.OrderItem{
				{Quantity: 1, UnitPrice: dec("100.00")},
			},
			rate:     "0.0825",
			subtotal: "100.00",
			tax:      "8.25",
			total:    "108.25",
		},
		{
			name: "tiny amount rounds tax to zero",
			items: []orderitem.OrderItem{
				{Quantity: 1, UnitPrice: dec("0.01")},
			},
			rate:     "0.0825",
			subtotal: "0.01",
			tax:      "0",
			total:    "0.01",
		},
		{
			name: "exact half rounds away from zero",
			items: []orderitem.OrderItem{
				{Quantity: 1, UnitPrice: dec("0.30")},
			},
			rate:     "0.085",
			subtotal: "0.30",
			tax:      "0.03",
			total:    "0.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Calculate(tt.items, dec(tt.rate))

			assert.True(t, dec(tt.subtotal).Equal(quote.Subtotal), "subtotal = %s", quote.Subtotal)
			assert.True(t, dec(tt.tax).Equal(quote.Tax), "tax = %s", quote.Tax)
			assert.True(t, dec(tt.total).Equal(quote.Total), "total = %s", quote.Total)
		})
	}
}

func TestCalculate_TotalAlwaysSubtotalPlusTax(t *testing.T) {
	items := []orderitem.OrderItem{
		{Quantity: 3, UnitPrice: dec("19.99")},
		{Quantity: 7, UnitPrice: dec("0.33")},
		{Quantity: 1, UnitPrice: dec("1234.56")},
	}

	for _, rate := range []string{"0", "0.05", "0.0825", "0.2"} {
		quote := Calculate(items, dec(rate))

		assert.True(t, quote.Subtotal.Add(quote.Tax).Equal(quote.Total), "rate %s", rate)
		assert.Equal(t, int32(-2), min32(quote.Tax.Exponent(), -2), "tax has at most 2 decimal places")
	}
}

func TestCalculate_TaxRoundedOnceOnOrderLevel(t *testing.T) {
	// Per-line rounding would give 0.01 + 0.01 = 0.02;
	// order-level rounding of 0.011 + 0.011 = 0.022 gives 0.02 as well,
	// so use amounts where the two policies disagree:
	// two lines of 0.055 tax each -> per line 0.06+0.06=0.12,
	// order level 0.11.
	items := []orderitem.OrderItem{
		{Quantity: 1, UnitPrice: dec("0.55")},
		{Quantity: 1, UnitPrice: dec("0.55")},
	}

	quote := Calculate(items, dec("0.10"))

	assert.True(t, dec("0.11").Equal(quote.Tax), "tax = %s", quote.Tax)
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}

	return b
}

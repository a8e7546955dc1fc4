// Package pricing computes order totals from line items and a tax rate.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
)

// defaultTaxRate is 8.25%, applied when no rate is configured.
var defaultTaxRate = decimal.New(825, -4)

// Quote holds the computed amounts for an order.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// TaxRate returns the configured tax rate, falling back to the default.
func TaxRate() decimal.Decimal {
	if rate := viper.GetFloat64("pricing.tax_rate"); rate > 0 {
		return decimal.NewFromFloat(rate)
	}

	return defaultTaxRate
}

// Calculate computes subtotal, tax and total for the given line items.
// The tax is rounded half away from zero to 2 decimal places exactly once,
// on the order-level amount; rounding per line would accumulate drift.
func Calculate(items []orderitem.OrderItem, taxRate decimal.Decimal) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

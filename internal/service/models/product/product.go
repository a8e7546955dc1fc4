package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is reference data consumed by order validation, never mutated by
// the order workflow.
type Product struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"categoryId"`
	SKU        string          `json:"sku"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

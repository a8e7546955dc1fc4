package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
)

// Order represents one customer purchase. Orders are never physically
// deleted; cancellation and refund are statuses.
type Order struct {
	ID              int64                 `json:"id"`
	CustomerID      int64                 `json:"customerId"`
	ShippingAddress *string               `json:"shippingAddress,omitempty"`
	Status          Status                `json:"status"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Tax             decimal.Decimal       `json:"tax"`
	Total           decimal.Decimal       `json:"total"`
	IdempotencyKey  string                `json:"-"`
	PlacedAt        time.Time             `json:"placedAt"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	OrderItems      []orderitem.OrderItem `json:"orderItems"`
}

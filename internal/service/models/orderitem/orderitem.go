package orderitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents one line within an order. Lines are created together
// with their order and are immutable afterward.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

// LineTotal is quantity × unit price. It is derived on demand and never
// persisted.
func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

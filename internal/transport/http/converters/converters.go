// Package converters maps service models to HTTP response shapes.
package converters

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
)

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	OrderID         int64               `json:"orderId"`
	CustomerID      int64               `json:"customerId"`
	Status          string              `json:"status"`
	ShippingAddress *string             `json:"shippingAddress,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	PlacedAt        time.Time           `json:"placedAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderItemResponse is the wire shape of one order line. The line total is
// derived on the way out, never stored.
type OrderItemResponse struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderToResponse converts a service order to its wire shape.
func OrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = orderItemToResponse(item)
	}

	return OrderResponse{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Status:          o.Status.String(),
		ShippingAddress: o.ShippingAddress,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Total:           o.Total,
		PlacedAt:        o.PlacedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}

// OrdersToResponse converts a list of service orders to wire shapes.
func OrdersToResponse(orders []order.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderToResponse(o)
	}

	return result
}

func orderItemToResponse(item orderitem.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		LineTotal: item.LineTotal(),
	}
}

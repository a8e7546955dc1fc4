package iorderitemrepo

import (
	"context"

	"github.com/storefront-labs/oms/internal/service/models/orderitem"
)

// Repository is the interface for the order item postgres repository.
type Repository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}

package iorderrepo

import (
	"context"
	"time"

	"github.com/storefront-labs/oms/internal/service/models/order"
)

// Repository is the interface for the order postgres repository.
type Repository interface {
	// Insert creates one order row and returns it with the assigned id.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// GetByID returns the order or a NotFoundError.
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// GetByIdempotencyKey returns the order previously created with the key,
	// or nil when the key has not been seen.
	GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error)

	// Query retrieves orders based on filter criteria.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus performs a compare-and-swap on the order status. It
	// reports false when the row no longer carries the expected status.
	UpdateStatus(ctx context.Context, id int64, from, to order.Status, updatedAt time.Time) (bool, error)
}

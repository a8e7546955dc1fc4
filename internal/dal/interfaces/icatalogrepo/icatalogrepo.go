package icatalogrepo

import (
	"context"

	"github.com/storefront-labs/oms/internal/service/models/customer"
	"github.com/storefront-labs/oms/internal/service/models/product"
)

// Repository is the read-only catalog lookup used by order validation.
type Repository interface {
	// GetCustomerByID returns nil without error when the customer does not
	// exist.
	GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error)

	// GetProductsByIDs returns the subset of products that exist.
	GetProductsByIDs(ctx context.Context, ids []int64) ([]product.Product, error)
}

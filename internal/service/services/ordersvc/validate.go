package ordersvc

import (
	"context"
	"fmt"

	"github.com/storefront-labs/oms/internal/service/errs"
	"github.com/storefront-labs/oms/internal/service/models/customer"
	"github.com/storefront-labs/oms/internal/service/models/product"
	"golang.org/x/sync/errgroup"
)

// validateOrder checks the request before anything is written: the customer
// exists and is active, every product exists and is active, quantities and
// prices are positive, and no product appears twice. It reads the catalog
// and mutates nothing.
func (s *OrderService) validateOrder(ctx context.Context, req CreateOrderRequest) error {
	if req.CustomerID <= 0 {
		return &errs.ValidationError{Field: "customerId", Reason: "must be a positive identifier"}
	}

	if len(req.Items) == 0 {
		return &errs.ValidationError{Field: "items", Reason: "order must contain at least one item"}
	}

	seen := make(map[int64]struct{}, len(req.Items))
	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)

		if item.ProductID <= 0 {
			return &errs.ValidationError{Field: field + ".productId", Reason: "must be a positive identifier"}
		}
		if item.Quantity <= 0 {
			return &errs.ValidationError{Field: field + ".quantity", Reason: "must be a positive integer"}
		}
		if !item.UnitPrice.IsPositive() {
			return &errs.ValidationError{Field: field + ".unitPrice", Reason: "must be a positive amount"}
		}

		if _, ok := seen[item.ProductID]; ok {
			return &errs.ValidationError{
				Field:  field + ".productId",
				Reason: fmt.Sprintf("product %d appears more than once", item.ProductID),
			}
		}
		seen[item.ProductID] = struct{}{}
	}

	productIds := make([]int64, 0, len(seen))
	for id := range seen {
		productIds = append(productIds, id)
	}

	var (
		cust     *customer.Customer
		products []product.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cust, err = s.catalog.GetCustomerByID(gctx, req.CustomerID)

		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.GetProductsByIDs(gctx, productIds)

		return err
	})
	if err := g.Wait(); err != nil {
		return &errs.PersistenceError{Op: "catalog lookup", Err: err}
	}

	if cust == nil {
		return &errs.ValidationError{
			Field:  "customerId",
			Reason: fmt.Sprintf("customer %d does not exist", req.CustomerID),
		}
	}
	if !cust.IsActive {
		return &errs.ValidationError{
			Field:  "customerId",
			Reason: fmt.Sprintf("customer %d is inactive", req.CustomerID),
		}
	}

	active := make(map[int64]bool, len(products))
	for _, p := range products {
		active[p.ID] = p.IsActive
	}

	for i, item := range req.Items {
		isActive, exists := active[item.ProductID]
		if !exists {
			return &errs.ValidationError{
				Field:  fmt.Sprintf("items[%d].productId", i),
				Reason: fmt.Sprintf("product %d does not exist", item.ProductID),
			}
		}
		if !isActive {
			return &errs.ValidationError{
				Field:  fmt.Sprintf("items[%d].productId", i),
				Reason: fmt.Sprintf("product %d is inactive", item.ProductID),
			}
		}
	}

	return nil
}

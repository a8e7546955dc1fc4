package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/storefront-labs/oms/internal/dal/postgres"
	"github.com/storefront-labs/oms/internal/service/models/customer"
	"github.com/storefront-labs/oms/internal/service/models/product"
)

// PostgresCatalogRepository is the read-only catalog lookup over customers
// and products. Order processing references this data and never mutates it.
type PostgresCatalogRepository struct {
	client *postgres.Client
	sb     sq.StatementBuilderType
}

// NewPostgresCatalogRepository creates a new Postgres catalog repository.
func NewPostgresCatalogRepository(client *postgres.Client) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		client: client,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetCustomerByID returns nil without error when the customer does not exist.
func (r *PostgresCatalogRepository) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query, args, err := r.sb.
		Select("id", "email", "full_name", "is_active", "created_at", "updated_at").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c customer.Customer
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Email,
		&c.FullName,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}

	return &c, nil
}

// GetProductsByIDs returns the subset of products that exist.
func (r *PostgresCatalogRepository) GetProductsByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	query, args, err := r.sb.
		Select("id", "category_id", "sku", "title", "price", "is_active", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID,
			&p.CategoryID,
			&p.SKU,
			&p.Title,
			&p.Price,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

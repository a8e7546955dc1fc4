package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/errs"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
)

const orderColumns = "id, customer_id, shipping_address, status, subtotal, tax, total, idempotency_key, placed_at, created_at, updated_at"

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id              int64           `db:"id"`
	CustomerId      int64           `db:"customer_id"`
	ShippingAddress *string         `db:"shipping_address"`
	Status          string          `db:"status"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	Tax             decimal.Decimal `db:"tax"`
	Total           decimal.Decimal `db:"total"`
	IdempotencyKey  *string         `db:"idempotency_key"`
	PlacedAt        time.Time       `db:"placed_at"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	key := ""
	if o.IdempotencyKey != nil {
		key = *o.IdempotencyKey
	}

	return &order.Order{
		ID:              o.Id,
		CustomerID:      o.CustomerId,
		ShippingAddress: o.ShippingAddress,
		Status:          status,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Total:           o.Total,
		IdempotencyKey:  key,
		PlacedAt:        o.PlacedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		OrderItems:      []orderitem.OrderItem{}, // populated separately
	}, nil
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates one order row and returns it with the assigned identifier.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	var key *string
	if o.IdempotencyKey != "" {
		key = &o.IdempotencyKey
	}

	query, args, err := r.sb.
		Insert("orders").
		Columns(
			"customer_id",
			"shipping_address",
			"status",
			"subtotal",
			"tax",
			"total",
			"idempotency_key",
			"placed_at",
			"created_at",
			"updated_at",
		).
		Values(
			o.CustomerID,
			o.ShippingAddress,
			o.Status.String(),
			o.Subtotal,
			o.Tax,
			o.Total,
			key,
			o.PlacedAt,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING " + orderColumns).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := r.scanOne(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return order.Order{}, err
	}

	model.OrderItems = append(model.OrderItems, o.OrderItems...)

	return *model, nil
}

// GetByID retrieves one order by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.sb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	dal, err := r.scanOne(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &errs.NotFoundError{Entity: "order", ID: id}
		}

		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return dal.ToModel()
}

// GetByIdempotencyKey retrieves the order created with the given key, or nil
// when the key has not been seen before.
func (r *PostgresOrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error) {
	query, args, err := r.sb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	dal, err := r.scanOne(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get order by idempotency key: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns).
		From("orders").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.CustomerIds) > 0 {
		query = query.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		dal, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, err
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus performs a compare-and-swap on the order status. The expected
// status in the WHERE clause is what serializes concurrent transitions on the
// same order; zero affected rows means another call won the race.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	from, to order.Status,
	updatedAt time.Time,
) (bool, error) {
	query, args, err := r.sb.
		Update("orders").
		Set("status", to.String()).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id, "status": from.String()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order %d status: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *PostgresOrderRepository) scanOne(row pgx.Row) (*OrderDal, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.ShippingAddress,
		&dal.Status,
		&dal.Subtotal,
		&dal.Tax,
		&dal.Total,
		&dal.IdempotencyKey,
		&dal.PlacedAt,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}

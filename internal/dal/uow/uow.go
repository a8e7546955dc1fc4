package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iauditrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iorderrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/ioutboxrepo"
	"github.com/storefront-labs/oms/internal/dal/postgres"
	auditrepo "github.com/storefront-labs/oms/internal/dal/repositories/audit/postgres"
	orderrepo "github.com/storefront-labs/oms/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/storefront-labs/oms/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/storefront-labs/oms/internal/dal/repositories/outbox/postgres"
)

// unitOfWork binds the order, order item, audit and outbox repositories to a
// single pgx transaction so a business mutation, its audit record and its
// outbox event commit or roll back together.
type unitOfWork struct {
	client        *postgres.Client
	tx            pgx.Tx
	orderRepo     iorderrepo.Repository
	orderItemRepo iorderitemrepo.Repository
	auditRepo     iauditrepo.Repository
	outboxRepo    ioutboxrepo.Repository
}

// NewUnitOfWork creates a unit of work. Until Begin is called the
// repositories run directly on the pool.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		auditRepo:     auditrepo.NewPostgresAuditRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.Repository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.Repository {
	return u.orderItemRepo
}

func (u *unitOfWork) AuditRepository() iauditrepo.Repository {
	return u.auditRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.Repository {
	return u.outboxRepo
}

// Begin opens a transaction and rebinds every repository to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.auditRepo = auditrepo.NewPostgresAuditRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. It is safe to call after Commit; pgx
// reports ErrTxClosed which is swallowed here so it can run in a defer.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}

	return nil
}

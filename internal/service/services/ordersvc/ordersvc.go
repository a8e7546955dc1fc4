package ordersvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iauditrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/icatalogrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/iorderrepo"
	"github.com/storefront-labs/oms/internal/dal/interfaces/ioutboxrepo"
	"github.com/storefront-labs/oms/internal/dal/postgres"
	catalogrepo "github.com/storefront-labs/oms/internal/dal/repositories/catalog/postgres"
	"github.com/storefront-labs/oms/internal/dal/uow"
	"github.com/storefront-labs/oms/internal/service/errs"
	"github.com/storefront-labs/oms/internal/service/models/auditrecord"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
	"github.com/storefront-labs/oms/internal/service/pricing"
)

const eventsQueue = "oms.order.events"

// OrderService implements the order-processing workflow: validation, total
// calculation, atomic persistence, status transitions and audit. All business
// rules live here; the storage layer only does row CRUD and transactions.
type OrderService struct {
	pgClient *postgres.Client
	catalog  icatalogrepo.Repository
	taxRate  decimal.Decimal
	newUOW   func() unitOfWork
	now      func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.Repository
	OrderItemRepository() iorderitemrepo.Repository
	AuditRepository() iauditrepo.Repository
	OutboxRepository() ioutboxrepo.Repository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.taxRate.IsZero() {
		s.taxRate = pricing.TaxRate()
	}

	if s.newUOW == nil || s.catalog == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client is required")
		}
		if s.newUOW == nil {
			s.newUOW = func() unitOfWork { return uow.NewUnitOfWork(s.pgClient) }
		}
		if s.catalog == nil {
			s.catalog = catalogrepo.NewPostgresCatalogRepository(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithCatalogRepository overrides the catalog lookup.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogRepository(catalog icatalogrepo.Repository) option {
	return func(s *OrderService) {
		s.catalog = catalog
	}
}

// WithUnitOfWorkFactory overrides how transactions are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithTaxRate overrides the configured tax rate.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTaxRate(rate decimal.Decimal) option {
	return func(s *OrderService) {
		s.taxRate = rate
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// NewOrderItem is one requested line of a new order.
type NewOrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	CustomerID      int64
	ShippingAddress *string
	IdempotencyKey  string
	ActorID         int64
	Items           []NewOrderItem
}

// CreateOrder validates the request against the catalog, computes totals,
// and persists the order, its items, the audit record and the outbox event
// in one transaction. When the request carries an idempotency key already
// seen, the previously created order is returned instead of a duplicate.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (order.Order, error) {
	if err := s.validateOrder(ctx, req); err != nil {
		return order.Order{}, err
	}

	now := s.now()

	items := make([]orderitem.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = orderitem.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: now,
		}
	}

	quote := pricing.Calculate(items, s.taxRate)

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = work.Rollback(ctx) }()

	if req.IdempotencyKey != "" {
		existing, err := work.OrderRepository().GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return order.Order{}, &errs.PersistenceError{Op: "idempotency lookup", Err: err}
		}
		if existing != nil {
			existingItems, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
				OrderIds: []int64{existing.ID},
			})
			if err != nil {
				return order.Order{}, &errs.PersistenceError{Op: "idempotency lookup", Err: err}
			}
			existing.OrderItems = existingItems

			return *existing, nil
		}
	}

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		CustomerID:      req.CustomerID,
		ShippingAddress: req.ShippingAddress,
		Status:          order.StatusPending,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Total:           quote.Total,
		IdempotencyKey:  req.IdempotencyKey,
		PlacedAt:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "insert order", Err: err}
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "insert order items", Err: err}
	}
	inserted.OrderItems = insertedItems

	snapshot, err := json.Marshal(inserted)
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "marshal order snapshot", Err: err}
	}

	_, err = work.AuditRepository().Insert(ctx, auditrecord.AuditRecord{
		TableName: "orders",
		Action:    auditrecord.ActionCreated,
		RecordID:  inserted.ID,
		ActorID:   req.ActorID,
		NewValue:  snapshot,
		CreatedAt: now,
	})
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "insert audit record", Err: err}
	}

	if err := enqueueOrderEvent(ctx, work, "order.created", inserted, now); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "enqueue event", Err: err}
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "commit", Err: err}
	}

	return inserted, nil
}

// UpdateStatusRequest asks for one status transition on an order.
type UpdateStatusRequest struct {
	OrderID   int64
	NewStatus order.Status
	ActorID   int64
}

// UpdateOrderStatus applies one transition of the order state machine. A
// transition the machine forbids returns InvalidTransitionError without any
// mutation; losing a race against a concurrent transition returns
// ConflictError.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, req UpdateStatusRequest) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = work.Rollback(ctx) }()

	ord, err := work.OrderRepository().GetByID(ctx, req.OrderID)
	if err != nil {
		return order.Order{}, err
	}

	if !ord.Status.CanTransitionTo(req.NewStatus) {
		return order.Order{}, &errs.InvalidTransitionError{
			From: ord.Status.String(),
			To:   req.NewStatus.String(),
		}
	}

	action := auditrecord.ActionStatusChanged
	if req.NewStatus == order.StatusCancelled {
		action = auditrecord.ActionCancelled
	}

	return s.applyTransition(ctx, work, *ord, req.NewStatus, action, req.ActorID, "")
}

// CancelOrderRequest asks for an order to be cancelled.
type CancelOrderRequest struct {
	OrderID int64
	Reason  string
	ActorID int64
}

// CancelOrder moves an order to the terminal cancelled status. Orders that
// have been delivered, refunded or already cancelled are not cancellable.
func (s *OrderService) CancelOrder(ctx context.Context, req CancelOrderRequest) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = work.Rollback(ctx) }()

	ord, err := work.OrderRepository().GetByID(ctx, req.OrderID)
	if err != nil {
		return order.Order{}, err
	}

	if !ord.Status.CanTransitionTo(order.StatusCancelled) {
		return order.Order{}, &errs.NotCancellableError{
			OrderID: ord.ID,
			Status:  ord.Status.String(),
		}
	}

	return s.applyTransition(ctx, work, *ord, order.StatusCancelled, auditrecord.ActionCancelled, req.ActorID, req.Reason)
}

// statusSnapshot is the audit before/after image of a transition.
type statusSnapshot struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// applyTransition performs the compare-and-swap, writes the audit record and
// the outbox event, and commits. The caller has already verified the
// transition against the state machine and holds an open transaction.
func (s *OrderService) applyTransition(
	ctx context.Context,
	work unitOfWork,
	ord order.Order,
	to order.Status,
	action auditrecord.Action,
	actorID int64,
	reason string,
) (order.Order, error) {
	now := s.now()
	from := ord.Status

	ok, err := work.OrderRepository().UpdateStatus(ctx, ord.ID, from, to, now)
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "update order status", Err: err}
	}
	if !ok {
		return order.Order{}, &errs.ConflictError{Entity: "order", ID: ord.ID}
	}

	oldValue, err := json.Marshal(statusSnapshot{Status: from.String()})
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "marshal status snapshot", Err: err}
	}
	newValue, err := json.Marshal(statusSnapshot{Status: to.String(), Reason: reason})
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "marshal status snapshot", Err: err}
	}

	_, err = work.AuditRepository().Insert(ctx, auditrecord.AuditRecord{
		TableName: "orders",
		Action:    action,
		RecordID:  ord.ID,
		ActorID:   actorID,
		OldValue:  oldValue,
		NewValue:  newValue,
		CreatedAt: now,
	})
	if err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "insert audit record", Err: err}
	}

	ord.Status = to
	ord.UpdatedAt = now

	if err := enqueueOrderEvent(ctx, work, "order."+action.String(), ord, now); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "enqueue event", Err: err}
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, &errs.PersistenceError{Op: "commit", Err: err}
	}

	return ord, nil
}

// CalculateOrderTotal recomputes the total of an existing order from its
// persisted line items and the configured tax rate.
func (s *OrderService) CalculateOrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	work := s.newUOW()

	if _, err := work.OrderRepository().GetByID(ctx, orderID); err != nil {
		return decimal.Zero, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{orderID},
	})
	if err != nil {
		return decimal.Zero, &errs.PersistenceError{Op: "query order items", Err: err}
	}

	return pricing.Calculate(items, s.taxRate).Total, nil
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "query orders", Err: err}
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "query order items", Err: err}
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// orderEvent is the payload published to the events queue via the outbox.
type orderEvent struct {
	EventID    string          `json:"eventId"`
	Kind       string          `json:"kind"`
	OrderID    int64           `json:"orderId"`
	CustomerID int64           `json:"customerId"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func enqueueOrderEvent(ctx context.Context, work unitOfWork, kind string, ord order.Order, now time.Time) error {
	payload, err := json.Marshal(orderEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		OrderID:    ord.ID,
		CustomerID: ord.CustomerID,
		Status:     ord.Status.String(),
		Total:      ord.Total,
		OccurredAt: now,
	})
	if err != nil {
		return err
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return work.OutboxRepository().Insert(ctx, outboxMessage(kind, payload, maxRetries, now))
}

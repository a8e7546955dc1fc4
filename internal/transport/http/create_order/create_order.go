package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/services/ordersvc"
	"github.com/storefront-labs/oms/internal/transport/http/actor"
	"github.com/storefront-labs/oms/internal/transport/http/converters"
	"github.com/storefront-labs/oms/internal/transport/http/respond"
)

// IdempotencyHeader lets a client retry a create safely: a repeated key
// returns the order created by the first attempt instead of a duplicate.
const IdempotencyHeader = "Idempotency-Key"

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (order.Order, error)
}

var validate = validator.New()

type createOrderItem struct {
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
}

type createOrderRequest struct {
	CustomerID      int64             `json:"customerId" validate:"required,gt=0"`
	ShippingAddress *string           `json:"shippingAddress,omitempty"`
	Items           []createOrderItem `json:"items" validate:"required,min=1,dive"`
}

func (req *createOrderRequest) toModel(r *http.Request) ordersvc.CreateOrderRequest {
	items := make([]ordersvc.NewOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = ordersvc.NewOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return ordersvc.CreateOrderRequest{
		CustomerID:      req.CustomerID,
		ShippingAddress: req.ShippingAddress,
		IdempotencyKey:  r.Header.Get(IdempotencyHeader),
		ActorID:         actor.FromRequest(r),
		Items:           items,
	}
}

// CreateOrder handles the order creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "failed to decode request body")
		slog.Error("Error decoding create order request", "error", err)

		return
	}

	if err := validate.Struct(&req); err != nil {
		respond.BadRequest(w, err.Error())

		return
	}

	created, err := service.CreateOrder(r.Context(), req.toModel(r))
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, converters.OrderToResponse(created))
}

package cancelorder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/services/ordersvc"
	"github.com/storefront-labs/oms/internal/transport/http/actor"
	"github.com/storefront-labs/oms/internal/transport/http/converters"
	"github.com/storefront-labs/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	CancelOrder(ctx context.Context, req ordersvc.CancelOrderRequest) (order.Order, error)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles an order cancellation request. The body is optional;
// an empty reason is allowed.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respond.BadRequest(w, "invalid order id")

		return
	}

	var req cancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respond.BadRequest(w, "failed to decode request body")

		return
	}

	cancelled, err := service.CancelOrder(r.Context(), ordersvc.CancelOrderRequest{
		OrderID: orderID,
		Reason:  req.Reason,
		ActorID: actor.FromRequest(r),
	})
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrderToResponse(cancelled))
}

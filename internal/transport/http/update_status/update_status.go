package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
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
	UpdateOrderStatus(ctx context.Context, req ordersvc.UpdateStatusRequest) (order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles a status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respond.BadRequest(w, "invalid order id")

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "failed to decode request body")
		slog.Error("Error decoding update status request", "error", err)

		return
	}

	newStatus, err := order.ParseStatus(req.Status)
	if err != nil {
		respond.BadRequest(w, err.Error())

		return
	}

	updated, err := service.UpdateOrderStatus(r.Context(), ordersvc.UpdateStatusRequest{
		OrderID:   orderID,
		NewStatus: newStatus,
		ActorID:   actor.FromRequest(r),
	})
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrderToResponse(updated))
}

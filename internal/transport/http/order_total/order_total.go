package ordertotal

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	CalculateOrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error)
}

type orderTotalResponse struct {
	OrderID int64           `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// OrderTotal recomputes and returns the total of an existing order.
func OrderTotal(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respond.BadRequest(w, "invalid order id")

		return
	}

	total, err := service.CalculateOrderTotal(r.Context(), orderID)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orderTotalResponse{OrderID: orderID, Total: total})
}

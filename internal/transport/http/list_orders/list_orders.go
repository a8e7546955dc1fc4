package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/transport/http/converters"
	"github.com/storefront-labs/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids         []int64  `schema:"ids,omitempty"`
	CustomerIds []int64  `schema:"customerIds,omitempty"`
	Statuses    []string `schema:"statuses,omitempty"`
	Limit       int      `schema:"limit,omitempty"`
	Offset      int      `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) toModel() (order.QueryOrdersModel, error) {
	statuses := make([]order.Status, 0, len(q.Statuses))
	for _, s := range q.Statuses {
		status, err := order.ParseStatus(s)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		statuses = append(statuses, status)
	}

	return order.QueryOrdersModel{
		Ids:         q.Ids,
		CustomerIds: q.CustomerIds,
		Statuses:    statuses,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, nil
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error decoding list orders request", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		respond.BadRequest(w, err.Error())

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, converters.OrdersToResponse(orders))
}

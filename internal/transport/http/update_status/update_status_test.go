package updatestatus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/errs"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/services/ordersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	lastReq ordersvc.UpdateStatusRequest
	result  order.Order
	err     error
}

func (s *fakeService) UpdateOrderStatus(_ context.Context, req ordersvc.UpdateStatusRequest) (order.Order, error) {
	s.lastReq = req

	return s.result, s.err
}

func doRequest(t *testing.T, svc *fakeService, orderID, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Patch("/orders/{orderID}/status", func(w http.ResponseWriter, r *http.Request) {
		UpdateStatus(w, r, svc)
	})

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestUpdateStatus_Success(t *testing.T) {
	svc := &fakeService{
		result: order.Order{
			ID:     5,
			Status: order.StatusProcessing,
			Total:  decimal.RequireFromString("75.74"),
		},
	}

	rec := doRequest(t, svc, "5", `{"status": "processing"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.lastReq.OrderID)
	assert.Equal(t, order.StatusProcessing, svc.lastReq.NewStatus)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp["status"])
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "5", `{"status": "teleported"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_InvalidOrderID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "abc", `{"status": "processing"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc := &fakeService{
		err: &errs.InvalidTransitionError{From: "shipped", To: "pending"},
	}

	rec := doRequest(t, svc, "5", `{"status": "pending"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := &fakeService{
		err: &errs.NotFoundError{Entity: "order", ID: 5},
	}

	rec := doRequest(t, svc, "5", `{"status": "processing"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatus_Conflict(t *testing.T) {
	svc := &fakeService{
		err: &errs.ConflictError{Entity: "order", ID: 5},
	}

	rec := doRequest(t, svc, "5", `{"status": "processing"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/oms/internal/service/errs"
	"github.com/storefront-labs/oms/internal/service/models/order"
	"github.com/storefront-labs/oms/internal/service/models/orderitem"
	"github.com/storefront-labs/oms/internal/service/services/ordersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	lastReq ordersvc.CreateOrderRequest
	result  order.Order
	err     error
}

func (s *fakeService) CreateOrder(_ context.Context, req ordersvc.CreateOrderRequest) (order.Order, error) {
	s.lastReq = req

	return s.result, s.err
}

func TestCreateOrder_Success(t *testing.T) {
	svc := &fakeService{
		result: order.Order{
			ID:         5,
			CustomerID: 1,
			Status:     order.StatusPending,
			Subtotal:   decimal.RequireFromString("69.97"),
			Tax:        decimal.RequireFromString("5.77"),
			Total:      decimal.RequireFromString("75.74"),
			PlacedAt:   time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
			OrderItems: []orderitem.OrderItem{
				{ProductID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("29.99")},
				{ProductID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")},
			},
		},
	}

	body := `{
		"customerId": 1,
		"items": [
			{"productId": 10, "quantity": 2, "unitPrice": "29.99"},
			{"productId": 11, "quantity": 1, "unitPrice": "9.99"}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set(IdempotencyHeader, "key-1")
	req.Header.Set("X-Actor-Id", "42")
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "key-1", svc.lastReq.IdempotencyKey)
	assert.Equal(t, int64(42), svc.lastReq.ActorID)
	require.Len(t, svc.lastReq.Items, 2)
	assert.Equal(t, int64(10), svc.lastReq.Items[0].ProductID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(5), resp["orderId"])
	assert.Equal(t, "75.74", resp["total"])
	assert.Equal(t, "pending", resp["status"])
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, &fakeService{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_MissingItems(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"customerId": 1, "items": []}`))
	rec := httptest.NewRecorder()

	svc := &fakeService{}
	CreateOrder(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.lastReq.CustomerID, "service must not be called")
}

func TestCreateOrder_ValidationErrorFromService(t *testing.T) {
	svc := &fakeService{
		err: &errs.ValidationError{Field: "items[0].productId", Reason: "product 12 is inactive"},
	}

	body := `{"customerId": 1, "items": [{"productId": 12, "quantity": 1, "unitPrice": "49.99"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "items[0].productId", resp["field"])
}

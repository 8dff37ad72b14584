package cashfree

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/sattvik-shop/internal/lib/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := New(logger.Discard(), Config{
		BaseURL:    srv.URL,
		APIVersion: "2023-08-01",
		AppID:      "app",
		SecretKey:  "secret",
		Timeout:    time.Second,
	}, srv.Client())
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestCreateOrder(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "app", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"order_1700000000000","order_status":"ACTIVE","order_amount":598,"payment_session_id":"sess_1"}`))
	})

	order, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		Amount: decimal.NewFromInt(598),
		CustomerDetails: CustomerDetails{
			CustomerID:    "cust_1",
			CustomerEmail: "asha@example.com",
			CustomerPhone: "9876543210",
			CustomerName:  "Asha",
		},
		OrderMeta: OrderMeta{ReturnURL: "http://shop/order-success"},
	})
	require.NoError(t, err)

	assert.Equal(t, "order_1700000000000", got["order_id"])
	assert.Equal(t, float64(598), got["order_amount"])
	assert.Equal(t, "INR", got["order_currency"])
	assert.Equal(t, "Order from Mithila Sattvik Makhana", got["order_note"])

	assert.Equal(t, "sess_1", order.PaymentSessionID)
	assert.Equal(t, "ACTIVE", order.OrderStatus)
	assert.True(t, order.OrderAmount.Equal(decimal.NewFromInt(598)))
	assert.Equal(t, "sess_1", order.Raw["payment_session_id"])
}

func TestGetOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/order_42", r.URL.Path)
		_, _ = w.Write([]byte(`{"order_id":"order_42","order_status":"PAID"}`))
	})

	order, err := c.GetOrder(context.Background(), "order_42")
	require.NoError(t, err)
	assert.Equal(t, "PAID", order.OrderStatus)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad amount"}`, http.StatusBadRequest)
	})

	_, err := c.CreateOrder(context.Background(), CreateOrderRequest{Amount: decimal.NewFromInt(1)})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "bad amount")
}

func TestConfigured(t *testing.T) {
	c := New(logger.Discard(), Config{AppID: "app"}, nil)
	assert.False(t, c.Configured())
	c = New(logger.Discard(), Config{AppID: "app", SecretKey: "s"}, nil)
	assert.True(t, c.Configured())
}

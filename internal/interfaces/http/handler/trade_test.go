package handler

import (
	"net/http"
	"testing"

	tradeapp "github.com/jeenmata/impex/internal/application/trade"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_RequiresApprovedDealer(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"anonymous", "", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"pending dealer", app.token(t, auth.Subject{UserID: "user_009", Email: "new@example.com", Role: "user", DealerStatus: "Pending"}), http.StatusForbidden, dto.ErrCodeDealerNotApproved},
		{"approved dealer", app.dealerToken(t), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, "/api/v1/dealer/cart", tt.token, nil)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
		})
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	dealer := app.dealerToken(t)

	rec := app.do(t, http.MethodPost, "/api/v1/dealer/orders", dealer, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, dto.ErrCodeEmptyCart, errorCode(t, rec))

	rec = app.do(t, http.MethodPost, "/api/v1/dealer/cart/items", dealer, map[string]any{
		"product_id": "prod_001",
		"variant_id": "var_001_1",
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = app.do(t, http.MethodPost, "/api/v1/dealer/cart/items", dealer, map[string]any{
		"product_id": "prod_002",
		"variant_id": "var_002_2",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart tradeapp.CartResponse
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.ItemCount)
	assert.True(t, decimal.NewFromInt(42000).Equal(cart.Total), cart.Total.String())

	t.Run("quantity zero removes the line", func(t *testing.T) {
		rec := app.do(t, http.MethodPatch, "/api/v1/dealer/cart/items/"+cart.Items[1].ID, dealer, map[string]any{"quantity": 0})
		require.Equal(t, http.StatusOK, rec.Code)
		var updated tradeapp.CartResponse
		decode(t, rec, &updated)
		assert.Len(t, updated.Items, 1)
	})

	t.Run("unknown variant", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/dealer/cart/items", dealer, map[string]any{
			"product_id": "prod_001",
			"variant_id": "var_999",
			"quantity":   1,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	rec = app.do(t, http.MethodPost, "/api/v1/dealer/orders", dealer, map[string]any{"notes": "Deliver before Dashain"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order trade.Order
	decode(t, rec, &order)
	assert.Equal(t, trade.OrderStatusSubmitted, order.Status)
	assert.Equal(t, "abc.hardware@gmail.com", order.DealerEmail)
	assert.Equal(t, "Thamel, Kathmandu, Nepal", order.DeliveryAddress)
	assert.True(t, decimal.NewFromInt(30000).Equal(order.TotalAmountNPR))

	rec = app.do(t, http.MethodGet, "/api/v1/dealer/cart", dealer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.Empty(t, cart.Items)

	rec = app.do(t, http.MethodGet, "/api/v1/dealer/orders", dealer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []trade.Order
	resp := decode(t, rec, &mine)
	assert.Equal(t, 2, resp.Meta.Total)

	t.Run("confirmed orders cannot be cancelled by the dealer", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/dealer/orders/order_001/cancel", dealer, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, errorCode(t, rec))
	})

	rec = app.do(t, http.MethodPost, "/api/v1/dealer/orders/"+order.ID+"/cancel", dealer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &order)
	assert.Equal(t, trade.OrderStatusCancelled, order.Status)
}

func TestOrderHandler_Admin(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	rec := app.do(t, http.MethodGet, "/api/v1/admin/orders?status=Confirmed&limit=10", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []trade.Order
	resp := decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, 10, resp.Meta.Limit)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/orders/order_001/status", admin, map[string]any{"status": "Processing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order trade.Order
	decode(t, rec, &order)
	assert.Equal(t, trade.OrderStatusProcessing, order.Status)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/orders/order_001/status", admin, map[string]any{"status": "Submitted"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/orders/order_001/status", admin, map[string]any{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/v1/admin/orders/order_404/status", admin, map[string]any{"status": "Shipped"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

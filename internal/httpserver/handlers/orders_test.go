package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/storefront/internal/domain"
)

func createTestOrder(t *testing.T, url, token string) domain.Order {
	t.Helper()
	var order domain.Order
	status := doJSON(t, http.MethodPost, url+"/api/orders", token, map[string]any{
		"items": []map[string]any{
			{"productId": "p1", "name": "keyboard", "quantity": 2, "price": 50.0},
			{"productId": "p2", "name": "mat", "quantity": 1, "price": 19.5},
		},
		"total":           9999.0,
		"shippingAddress": "1 Main St",
		"paymentMethod":   "card",
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	return order
}

func TestCreateOrderForcesIdentityAndTotal(t *testing.T) {
	srv, _ := newTestServer(t)
	tok := bearer(t, "u1", "ana@example.com", domain.RoleUser)

	order := createTestOrder(t, srv.URL, tok)

	// Owner comes from the token, total from the line items.
	assert.Equal(t, "ana@example.com", order.Email)
	assert.Equal(t, 119.5, order.Total)
	assert.Equal(t, domain.OrderProcessing, order.Status)
	assert.Equal(t, domain.PaymentPending, order.Payment)
}

func TestCreateOrderValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	tok := bearer(t, "u1", "ana@example.com", domain.RoleUser)

	status := doJSON(t, http.MethodPost, srv.URL+"/api/orders", "", map[string]any{}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/orders", tok, map[string]any{
		"items": []map[string]any{}, "shippingAddress": "1 Main St",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/orders", tok, map[string]any{
		"items": []map[string]any{{"productId": "p1", "quantity": 0, "price": 5.0}},
		"shippingAddress": "1 Main St",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/orders", tok, map[string]any{
		"items":         []map[string]any{{"productId": "p1", "quantity": 1, "price": 5.0}},
		"paymentMethod": "card",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/orders", tok, map[string]any{
		"items":           []map[string]any{{"productId": "p1", "quantity": 1, "price": 5.0}},
		"shippingAddress": "1 Main St",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListOrdersIsAdminOnly(t *testing.T) {
	srv, _ := newTestServer(t)
	user := bearer(t, "u1", "ana@example.com", domain.RoleUser)
	admin := bearer(t, "a1", "admin@example.com", domain.RoleAdmin)

	createTestOrder(t, srv.URL, user)

	status := doJSON(t, http.MethodGet, srv.URL+"/api/orders", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, http.MethodGet, srv.URL+"/api/orders", user, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	status = doJSON(t, http.MethodGet, srv.URL+"/api/orders", admin, nil, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Orders, 1)
}

func TestListMyOrders(t *testing.T) {
	srv, _ := newTestServer(t)
	ana := bearer(t, "u1", "ana@example.com", domain.RoleUser)
	bo := bearer(t, "u2", "bo@example.com", domain.RoleUser)

	createTestOrder(t, srv.URL, ana)
	createTestOrder(t, srv.URL, ana)
	createTestOrder(t, srv.URL, bo)

	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	status := doJSON(t, http.MethodGet, srv.URL+"/api/orders/myorders", ana, nil, &resp)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Orders, 2)
	for _, o := range resp.Orders {
		assert.Equal(t, "ana@example.com", o.Email)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	srv, _ := newTestServer(t)
	ana := bearer(t, "u1", "ana@example.com", domain.RoleUser)
	bo := bearer(t, "u2", "bo@example.com", domain.RoleUser)
	admin := bearer(t, "a1", "admin@example.com", domain.RoleAdmin)

	order := createTestOrder(t, srv.URL, ana)
	url := fmt.Sprintf("%s/api/orders/%s", srv.URL, order.ID.Hex())

	status := doJSON(t, http.MethodGet, url, "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, http.MethodGet, url, ana, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodGet, url, admin, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	// A stranger's probe and a missing order are indistinguishable.
	status = doJSON(t, http.MethodGet, url, bo, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	missing := srv.URL + "/api/orders/ffffffffffffffffffffffff"
	status = doJSON(t, http.MethodGet, missing, bo, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, http.MethodGet, missing, admin, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateOrderTransitions(t *testing.T) {
	srv, _ := newTestServer(t)
	ana := bearer(t, "u1", "ana@example.com", domain.RoleUser)
	admin := bearer(t, "a1", "admin@example.com", domain.RoleAdmin)

	order := createTestOrder(t, srv.URL, ana)
	url := fmt.Sprintf("%s/api/orders/%s", srv.URL, order.ID.Hex())

	// Only admins update orders, owners included.
	status := doJSON(t, http.MethodPut, url, ana, map[string]any{"status": "shipped"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var got domain.Order
	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"status": "shipped"}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.OrderShipped, got.Status)

	// Backwards and skipped transitions conflict.
	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"status": "processing"}, nil)
	assert.Equal(t, http.StatusConflict, status)

	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"status": "warehouse"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"status": "delivered"}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.OrderDelivered, got.Status)

	// Delivered is terminal.
	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"status": "cancelled"}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestUpdateOrderPaymentAndAddress(t *testing.T) {
	srv, _ := newTestServer(t)
	ana := bearer(t, "u1", "ana@example.com", domain.RoleUser)
	admin := bearer(t, "a1", "admin@example.com", domain.RoleAdmin)

	order := createTestOrder(t, srv.URL, ana)
	url := fmt.Sprintf("%s/api/orders/%s", srv.URL, order.ID.Hex())

	var got domain.Order
	status := doJSON(t, http.MethodPut, url, admin, map[string]any{
		"payment": "paid", "shippingAddress": "2 Other St",
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.PaymentPaid, got.Payment)
	assert.Equal(t, "2 Other St", got.ShippingAddress)
	// Status untouched by a payment-only patch.
	assert.Equal(t, domain.OrderProcessing, got.Status)

	status = doJSON(t, http.MethodPut, url, admin, map[string]any{"payment": "refunded"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPut, url, admin, map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

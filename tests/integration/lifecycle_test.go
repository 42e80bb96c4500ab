package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
	"github.com/MrSnakeDoc/storefront/internal/store/memstore"
)

var secret = []byte("integration-secret")

func newServer(t *testing.T) (*httptest.Server, *memstore.Store) {
	t.Helper()
	docs := memstore.New()
	srv := httptest.NewServer(httpserver.NewRouter([]string{"*"}, deps.Deps{
		Logger:      logger.New("error", false),
		StartTime:   time.Now(),
		Store:       docs,
		JWTSecret:   secret,
		WriteBurst:  1000,
		WritePerMin: 1000,
	}))
	t.Cleanup(srv.Close)
	return srv, docs
}

func sign(t *testing.T, sub, email string, role domain.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// TestStorefrontLifecycle drives one realistic session across the whole
// surface: an admin stocks the catalog, a customer orders, reacts to a blog
// post, and the order walks its status machine to delivery.
func TestStorefrontLifecycle(t *testing.T) {
	srv, docs := newServer(t)
	admin := sign(t, "a1", "admin@shop.example", domain.RoleAdmin)
	customer := sign(t, "u1", "cara@shop.example", domain.RoleUser)

	// Admin stocks a product.
	var product domain.Product
	status := call(t, http.MethodPost, srv.URL+"/api/products", admin, map[string]any{
		"name": "Walnut Desk", "description": "Solid walnut standing desk",
		"price": 450.0, "stock": 5, "category": "furniture",
	}, &product)
	require.Equal(t, http.StatusCreated, status)

	// Customer checks out two desks; the stored total is computed
	// server-side from the line items.
	var order domain.Order
	status = call(t, http.MethodPost, srv.URL+"/api/orders", customer, map[string]any{
		"items": []map[string]any{
			{"productId": product.ID.Hex(), "name": product.Name, "quantity": 2, "price": 450.0},
		},
		"total":           1.0,
		"shippingAddress": "5 Elm St",
		"paymentMethod":   "card",
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 900.0, order.Total)
	assert.Equal(t, "cara@shop.example", order.Email)

	// Admin walks the order through its lifecycle.
	orderURL := fmt.Sprintf("%s/api/orders/%s", srv.URL, order.ID.Hex())
	for _, next := range []string{"shipped", "delivered"} {
		status = call(t, http.MethodPut, orderURL, admin, map[string]any{"status": next}, &order)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, domain.OrderStatus(next), order.Status)
	}
	// Terminal state rejects further movement.
	status = call(t, http.MethodPut, orderURL, admin, map[string]any{"status": "cancelled"}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Meanwhile the shop blog gets a post and a reaction.
	var blog domain.Blog
	status = call(t, http.MethodPost, srv.URL+"/api/blogs", admin, map[string]any{
		"title": "New arrivals", "content": "Walnut desks are in.", "author": "staff", "status": "published",
	}, &blog)
	require.Equal(t, http.StatusCreated, status)

	blogURL := fmt.Sprintf("%s/api/blogs/%s", srv.URL, blog.ID.Hex())
	like := map[string]any{"toggleLike": map[string]any{"userId": "u1", "isLiking": true}}
	call(t, http.MethodPut, blogURL, customer, like, &blog)
	call(t, http.MethodPut, blogURL, customer, like, &blog)
	assert.Equal(t, int64(1), blog.Likes)
	assert.Equal(t, []string{"u1"}, blog.LikedBy)

	// The stored document holds the guarded invariant too.
	var stored domain.Blog
	require.NoError(t, docs.FindByKey(context.Background(), store.Blogs, blog.ID.Hex(), &stored))
	assert.Equal(t, int64(len(stored.LikedBy)), stored.Likes)
}

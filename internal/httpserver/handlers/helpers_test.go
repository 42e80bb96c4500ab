package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store/memstore"
)

var testSecret = []byte("test-secret")

// newTestServer mounts the full route surface on an in-memory store.
func newTestServer(t *testing.T) (*httptest.Server, *memstore.Store) {
	t.Helper()

	docs := memstore.New()
	d := deps.Deps{
		Logger:               logger.New("error", false),
		StartTime:            time.Now(),
		TimeNow:              func() time.Time { return time.Now().UTC() },
		Store:                docs,
		JWTSecret:            testSecret,
		CatalogReloadTrigger: make(chan struct{}, 1),
		WriteBurst:           1000,
		WritePerMin:          1000,
	}

	srv := httptest.NewServer(httpserver.NewRouter([]string{"*"}, d))
	t.Cleanup(srv.Close)
	return srv, docs
}

func bearer(t *testing.T, sub, email string, role domain.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

// doJSON performs a request and decodes the JSON response into out (ignored
// when out is nil). Returns the status code.
func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = strings.NewReader(s)
		} else {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

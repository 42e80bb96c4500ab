package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool            `json:"ready"`
	Deps  map[string]bool `json:"deps"`
}

// Readyz reports readiness: the document store must answer; the listing
// cache is optional and only reported.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]bool{
			"store": d.Store.Ping(ctx) == nil,
		}
		if d.Cache != nil {
			checks["cache"] = d.Cache.Ping(ctx) == nil
		}

		status := http.StatusOK
		if !checks["store"] {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, readyzResponse{Ready: checks["store"], Deps: checks})
	}
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
)

func init() { Register(registerUsers) }

func registerUsers(r chi.Router, d deps.Deps) {
	writeLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.WriteBurst,
		RefillPerIPPerMin: d.WritePerMin,
		TrustProxy:        d.TrustProxy,
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", handlers.ListUsers(d))
		r.Get("/{email}", handlers.GetUser(d))
		r.With(writeLimit).Put("/{email}", handlers.UpdateUser(d))
	})
}

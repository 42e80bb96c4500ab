package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
)

func init() { Register(registerOrders) }

func registerOrders(r chi.Router, d deps.Deps) {
	writeLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.WriteBurst,
		RefillPerIPPerMin: d.WritePerMin,
		TrustProxy:        d.TrustProxy,
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", handlers.ListOrders(d))
		r.Get("/myorders", handlers.ListMyOrders(d))
		r.Get("/{id}", handlers.GetOrder(d))
		r.With(writeLimit).Post("/", handlers.CreateOrder(d))
		r.With(writeLimit).Put("/{id}", handlers.UpdateOrder(d))
	})
}

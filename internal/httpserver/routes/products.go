package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
)

func init() { Register(registerProducts) }

func registerProducts(r chi.Router, d deps.Deps) {
	writeLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.WriteBurst,
		RefillPerIPPerMin: d.WritePerMin,
		TrustProxy:        d.TrustProxy,
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", handlers.ListProducts(d))
		r.Get("/{id}", handlers.GetProduct(d))
		r.With(writeLimit).Post("/", handlers.CreateProduct(d))
		r.With(writeLimit).Put("/{id}", handlers.UpdateProduct(d))
		r.With(writeLimit).Delete("/{id}", handlers.DeleteProduct(d))
	})
}

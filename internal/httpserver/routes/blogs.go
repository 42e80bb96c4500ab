package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
)

func init() { Register(registerBlogs) }

func registerBlogs(r chi.Router, d deps.Deps) {
	writeLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.WriteBurst,
		RefillPerIPPerMin: d.WritePerMin,
		TrustProxy:        d.TrustProxy,
	})

	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", handlers.ListBlogs(d))
		r.Get("/{id}", handlers.GetBlog(d))
		r.With(writeLimit).Post("/", handlers.CreateBlog(d))
		r.With(writeLimit).Put("/{id}", handlers.UpdateBlog(d))
		r.With(writeLimit).Delete("/{id}", handlers.DeleteBlog(d))
	})
}

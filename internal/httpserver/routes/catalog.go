package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).
		Post("/api/catalog/reload", handlers.ReloadCatalog(d))
}

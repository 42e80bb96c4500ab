package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
	"github.com/MrSnakeDoc/storefront/internal/logger"
)

// ReloadCatalog triggers an immediate reseed from products.yaml. The reload
// runs on the scheduler goroutine; this handler only signals it.
func ReloadCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpReloadCatalog, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		if d.CatalogReloadTrigger == nil {
			respondError(w, d.Logger, domain.Validationf("catalog seeding is disabled"))
			return
		}

		select {
		case d.CatalogReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusAccepted, map[string]string{"message": "catalog reload triggered"})
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusTooManyRequests, map[string]string{"error": "reload already in progress"})
		}
	}
}

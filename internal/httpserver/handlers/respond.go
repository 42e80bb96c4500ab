package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError translates any error into the {"error": message} convention.
// Backend failures keep their detail in the logs and answer with a generic
// message.
func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	if de, ok := domain.AsError(err); ok {
		if de.Kind == domain.ErrStore {
			log.Error("storage failure", logger.Error(err))
		}
		respondJSON(w, de.HTTPStatus(), map[string]string{"error": de.Message})
		return
	}

	log.Error("unhandled error", logger.Error(err))
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// storeErr maps store sentinels to domain errors for one resource kind.
func storeErr(err error, resource string) error {
	switch {
	case errors.Is(err, store.ErrInvalidKey):
		return domain.Validationf("invalid %s id", resource)
	case errors.Is(err, store.ErrNotFound):
		return domain.NotFoundf("%s not found", resource)
	default:
		return domain.StoreError(err)
	}
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return domain.Validationf("malformed request body")
	}
	return nil
}

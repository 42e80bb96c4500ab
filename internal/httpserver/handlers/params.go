package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/storefront/internal/domain"
)

// listParams extracts the optional listing parameters from the query string.
// Values that fail to parse fall back to defaults rather than erroring.
func listParams(r *http.Request) domain.ListParams {
	q := r.URL.Query()
	return domain.ListParams{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      atoiDefault(q.Get("page"), 1),
		Limit:     atoiDefault(q.Get("limit"), domain.DefaultLimit),
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

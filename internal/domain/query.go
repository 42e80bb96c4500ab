package domain

import (
	"github.com/MrSnakeDoc/storefront/internal/store"
)

const (
	// DefaultLimit is applied when no page size is given.
	DefaultLimit = 10
	// MaxLimit bounds response size regardless of what the caller asks for.
	MaxLimit = 100
)

// ListParams are the raw, all-optional listing parameters.
type ListParams struct {
	Search    string
	Category  string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination is returned alongside every listing page.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Searchable fields per collection; search text is matched case-insensitively
// as a substring across these, combined with OR.
var (
	blogSearchFields    = []string{"title", "content", "author"}
	productSearchFields = []string{"name", "description", "category"}
)

// Allowed sort fields per collection. Anything else falls back to creation
// time so callers cannot sort on unindexed or internal fields.
var (
	blogSortFields    = map[string]bool{"createdAt": true, "views": true, "likes": true, "title": true}
	productSortFields = map[string]bool{"createdAt": true, "price": true, "name": true, "rating": true}
)

// BlogQuery translates listing parameters into a blog store query.
// Status defaults to published; the explicit value "all" lifts the filter
// for author and admin views.
func BlogQuery(p ListParams) store.Query {
	p = p.normalized()
	q := baseQuery(p, blogSortFields)

	status := p.Status
	if status == "" {
		status = BlogPublished
	}
	if status != "all" {
		q.Equals["status"] = status
	}
	if p.Category != "" {
		q.Equals["category"] = p.Category
	}
	if p.Search != "" {
		q.Search = &store.Search{Term: p.Search, Fields: blogSearchFields}
	}
	return q
}

// ProductQuery translates listing parameters into a product store query.
func ProductQuery(p ListParams) store.Query {
	p = p.normalized()
	q := baseQuery(p, productSortFields)

	if p.Category != "" {
		q.Equals["category"] = p.Category
	}
	if p.Search != "" {
		q.Search = &store.Search{Term: p.Search, Fields: productSearchFields}
	}
	return q
}

// OrderQuery lists orders newest-first, optionally filtered to one owner.
func OrderQuery(p ListParams, email string) store.Query {
	p = p.normalized()
	q := baseQuery(p, map[string]bool{"createdAt": true, "total": true})
	if email != "" {
		q.Equals["email"] = email
	}
	return q
}

// UserQuery lists users newest-first.
func UserQuery(p ListParams) store.Query {
	p = p.normalized()
	return baseQuery(p, map[string]bool{"createdAt": true, "email": true})
}

func baseQuery(p ListParams, sortable map[string]bool) store.Query {
	sortField := p.SortBy
	if !sortable[sortField] {
		sortField = "createdAt"
	}
	sortDesc := p.SortOrder != "asc"

	return store.Query{
		Equals:    make(map[string]any),
		SortField: sortField,
		SortDesc:  sortDesc,
		Skip:      int64(p.Page-1) * int64(p.Limit),
		Limit:     int64(p.Limit),
	}
}

// Paginate computes the pagination envelope for a listing response.
// Pages is ceil(total/limit); an out-of-range page yields an empty result
// set but still reports the accurate total.
func Paginate(p ListParams, total int64) Pagination {
	p = p.normalized()
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

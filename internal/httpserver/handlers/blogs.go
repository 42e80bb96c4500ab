package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
	"github.com/MrSnakeDoc/storefront/internal/store"
)

type blogListResponse struct {
	Blogs      []domain.Blog     `json:"blogs"`
	Pagination domain.Pagination `json:"pagination"`
}

func ListBlogs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpListBlogs, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		p := listParams(r)
		blogs := []domain.Blog{}
		total, err := d.Store.Find(r.Context(), store.Blogs, domain.BlogQuery(p), &blogs)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		respondJSON(w, http.StatusOK, blogListResponse{
			Blogs:      blogs,
			Pagination: domain.Paginate(p, total),
		})
	}
}

func GetBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpReadBlog, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var blog domain.Blog
		if err := d.Store.FindByKey(r.Context(), store.Blogs, chi.URLParam(r, "id"), &blog); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}
		respondJSON(w, http.StatusOK, blog)
	}
}

type createBlogRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
	Status   string   `json:"status"`
}

func CreateBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mw.IdentityFrom(r.Context())
		if err := domain.Authorize(id, domain.OpCreateBlog, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var req createBlogRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if req.Title == "" || req.Content == "" || req.Author == "" {
			respondError(w, d.Logger, domain.Validationf("title, content and author are required"))
			return
		}

		status := req.Status
		if status == "" {
			status = domain.BlogDraft
		}
		if status != domain.BlogDraft && status != domain.BlogPublished {
			respondError(w, d.Logger, domain.Validationf("unknown blog status %q", status))
			return
		}

		now := d.Now()
		blog := domain.Blog{
			Title:    req.Title,
			Content:  req.Content,
			Author:   req.Author,
			Category: req.Category,
			Tags:     req.Tags,
			Image:    req.Image,
			Status:   status,
			// Ownership comes from the verified identity, never the payload.
			AuthorID:     id.SubjectID,
			LikedBy:      []string{},
			BookmarkedBy: []string{},
			Comments:     []domain.Comment{},
			ReadTime:     domain.ReadTime(req.Content),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		key, err := d.Store.Insert(r.Context(), store.Blogs, blog)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		var created domain.Blog
		if err := d.Store.FindByKey(r.Context(), store.Blogs, key, &created); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

// UpdateBlog dispatches a mutation payload: reaction intents become guarded
// atomic updates, everything else is an owner-gated replace of plain fields.
func UpdateBlog(d deps.Deps) http.HandlerFunc {
	router := domain.NewRouter(d.Now)

	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, d.Logger, domain.Validationf("malformed request body"))
			return
		}
		m, err := domain.ParseBlogMutation(raw)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		key := chi.URLParam(r, "id")
		var blog domain.Blog
		if err := d.Store.FindByKey(r.Context(), store.Blogs, key, &blog); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}

		op := m.Op()
		owner := ""
		if op == domain.OpEditBlog {
			owner = blog.AuthorID
		}
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), op, owner); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, err := router.BlogUpdate(m)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		matched, err := d.Store.Update(r.Context(), store.Blogs, key, u)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		// An unmatched guard means the reaction was already applied; the
		// refreshed document is the correct answer either way.
		if !matched && !m.IsIntent() {
			respondError(w, d.Logger, domain.NotFoundf("blog not found"))
			return
		}

		if err := d.Store.FindByKey(r.Context(), store.Blogs, key, &blog); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}
		respondJSON(w, http.StatusOK, blog)
	}
}

func DeleteBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "id")
		var blog domain.Blog
		if err := d.Store.FindByKey(r.Context(), store.Blogs, key, &blog); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}

		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpDeleteBlog, blog.AuthorID); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		if err := d.Store.Delete(r.Context(), store.Blogs, key); err != nil {
			respondError(w, d.Logger, storeErr(err, "blog"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
	}
}

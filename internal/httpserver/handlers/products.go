package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
	"github.com/MrSnakeDoc/storefront/internal/store/cache"
)

type productListResponse struct {
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListProducts serves the catalog listing through the Redis cache when one
// is configured. Cache misses fall through to the store and repopulate.
func ListProducts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpListProducts, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		p := listParams(r)
		key := cache.ListingKey("products",
			p.Search, p.Category, p.SortBy, p.SortOrder,
			strconv.Itoa(p.Page), strconv.Itoa(p.Limit))

		if d.Cache != nil {
			if payload, err := d.Cache.GetListing(r.Context(), key); err != nil {
				d.Logger.Warn("listing cache read failed", logger.Error(err))
			} else if payload != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(payload)
				return
			}
		}

		products := []domain.Product{}
		total, err := d.Store.Find(r.Context(), store.Products, domain.ProductQuery(p), &products)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		resp := productListResponse{Products: products, Pagination: domain.Paginate(p, total)}
		payload, err := json.Marshal(resp)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		if d.Cache != nil {
			if err := d.Cache.SetListing(r.Context(), key, payload); err != nil {
				d.Logger.Warn("listing cache write failed", logger.Error(err))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}

func GetProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpReadProduct, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var product domain.Product
		if err := d.Store.FindByKey(r.Context(), store.Products, chi.URLParam(r, "id"), &product); err != nil {
			respondError(w, d.Logger, storeErr(err, "product"))
			return
		}
		respondJSON(w, http.StatusOK, product)
	}
}

type createProductRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          any               `json:"price"`
	OriginalPrice  any               `json:"originalPrice"`
	Stock          int64             `json:"stock"`
	SKU            string            `json:"sku"`
	Supplier       string            `json:"supplier"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Features       []string          `json:"features"`
	Rating         float64           `json:"rating"`
	Reviews        int64             `json:"reviews"`
}

func CreateProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpWriteProduct, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var req createProductRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if req.Name == "" || req.Description == "" {
			respondError(w, d.Logger, domain.Validationf("name and description are required"))
			return
		}
		if req.Price == nil {
			respondError(w, d.Logger, domain.Validationf("price is required"))
			return
		}
		// Prices accept numeric strings, same as the update path.
		price, ok := domain.CoerceNumber(req.Price)
		if !ok {
			respondError(w, d.Logger, domain.Validationf("field %q must be numeric", "price"))
			return
		}
		if price < 0 {
			respondError(w, d.Logger, domain.Validationf("price cannot be negative"))
			return
		}
		var originalPrice float64
		if req.OriginalPrice != nil {
			if originalPrice, ok = domain.CoerceNumber(req.OriginalPrice); !ok {
				respondError(w, d.Logger, domain.Validationf("field %q must be numeric", "originalPrice"))
				return
			}
			if originalPrice < 0 {
				respondError(w, d.Logger, domain.Validationf("originalPrice cannot be negative"))
				return
			}
		}
		if req.Stock < 0 {
			respondError(w, d.Logger, domain.Validationf("stock cannot be negative"))
			return
		}
		if req.SKU == "" {
			req.SKU = uuid.NewString()
		}

		now := d.Now()
		product := domain.Product{
			Name:           req.Name,
			Description:    req.Description,
			Category:       req.Category,
			Price:          price,
			OriginalPrice:  originalPrice,
			Stock:          req.Stock,
			SKU:            req.SKU,
			Supplier:       req.Supplier,
			Images:         req.Images,
			Specifications: req.Specifications,
			Features:       req.Features,
			Rating:         req.Rating,
			Reviews:        req.Reviews,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		key, err := d.Store.Insert(r.Context(), store.Products, product)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		invalidateListings(r, d)

		var created domain.Product
		if err := d.Store.FindByKey(r.Context(), store.Products, key, &created); err != nil {
			respondError(w, d.Logger, storeErr(err, "product"))
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func UpdateProduct(d deps.Deps) http.HandlerFunc {
	router := domain.NewRouter(d.Now)

	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpWriteProduct, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var fields map[string]any
		if err := decodeBody(r, &fields); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, err := router.ProductUpdate(fields)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		key := chi.URLParam(r, "id")
		matched, err := d.Store.Update(r.Context(), store.Products, key, u)
		if err != nil {
			respondError(w, d.Logger, storeErr(err, "product"))
			return
		}
		if !matched {
			respondError(w, d.Logger, domain.NotFoundf("product not found"))
			return
		}
		invalidateListings(r, d)

		var product domain.Product
		if err := d.Store.FindByKey(r.Context(), store.Products, key, &product); err != nil {
			respondError(w, d.Logger, storeErr(err, "product"))
			return
		}
		respondJSON(w, http.StatusOK, product)
	}
}

func DeleteProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpWriteProduct, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		if err := d.Store.Delete(r.Context(), store.Products, chi.URLParam(r, "id")); err != nil {
			respondError(w, d.Logger, storeErr(err, "product"))
			return
		}
		invalidateListings(r, d)
		respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
	}
}

func invalidateListings(r *http.Request, d deps.Deps) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.InvalidateListings(r.Context()); err != nil {
		d.Logger.Warn("listing cache invalidation failed", logger.Error(err))
	}
}

package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
)

type orderListResponse struct {
	Orders     []domain.Order    `json:"orders"`
	Pagination domain.Pagination `json:"pagination"`
}

func ListOrders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpListOrders, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		p := listParams(r)
		orders := []domain.Order{}
		total, err := d.Store.Find(r.Context(), store.Orders, domain.OrderQuery(p, r.URL.Query().Get("email")), &orders)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		respondJSON(w, http.StatusOK, orderListResponse{Orders: orders, Pagination: domain.Paginate(p, total)})
	}
}

// ListMyOrders returns the caller's own orders, matched by token email.
func ListMyOrders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mw.IdentityFrom(r.Context())
		if id == nil {
			respondError(w, d.Logger, domain.Unauthenticated("authentication required"))
			return
		}

		p := listParams(r)
		orders := []domain.Order{}
		total, err := d.Store.Find(r.Context(), store.Orders, domain.OrderQuery(p, id.Email), &orders)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		respondJSON(w, http.StatusOK, orderListResponse{Orders: orders, Pagination: domain.Paginate(p, total)})
	}
}

func GetOrder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mw.IdentityFrom(r.Context())
		if id == nil {
			respondError(w, d.Logger, domain.Unauthenticated("authentication required"))
			return
		}

		var order domain.Order
		err := d.Store.FindByKey(r.Context(), store.Orders, chi.URLParam(r, "id"), &order)
		if errors.Is(err, store.ErrNotFound) && !id.IsAdmin() {
			// Non-admins get the same answer for someone else's order and a
			// missing one, so order ids cannot be probed.
			respondError(w, d.Logger, domain.Forbidden("not the owner of this resource"))
			return
		}
		if err != nil {
			respondError(w, d.Logger, storeErr(err, "order"))
			return
		}

		if err := domain.Authorize(id, domain.OpReadOrder, order.Email); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}

type createOrderRequest struct {
	Items           []domain.OrderItem `json:"items"`
	Total           float64            `json:"total"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

func CreateOrder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mw.IdentityFrom(r.Context())
		if err := domain.Authorize(id, domain.OpCreateOrder, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var req createOrderRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if len(req.Items) == 0 {
			respondError(w, d.Logger, domain.Validationf("order requires at least one item"))
			return
		}
		for _, it := range req.Items {
			if it.ProductID == "" || it.Quantity <= 0 || it.Price < 0 {
				respondError(w, d.Logger, domain.Validationf("order item requires productId, positive quantity and non-negative price"))
				return
			}
		}
		if req.ShippingAddress == "" {
			respondError(w, d.Logger, domain.Validationf("shippingAddress is required"))
			return
		}
		if req.PaymentMethod == "" {
			respondError(w, d.Logger, domain.Validationf("paymentMethod is required"))
			return
		}

		now := d.Now()
		order := domain.Order{
			// Ownership comes from the verified identity, never the payload.
			Email:           id.Email,
			Items:           req.Items,
			Status:          domain.OrderProcessing,
			Payment:         domain.PaymentPending,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		// The stored total is always recomputed from line items; a client
		// total that disagrees is logged and discarded.
		order.Total = order.ItemsTotal()
		if req.Total != 0 && math.Abs(req.Total-order.Total) > 0.005 {
			d.Logger.Warn("client order total mismatch",
				logger.Float64("client_total", req.Total),
				logger.Float64("computed_total", order.Total),
				logger.String("email", order.Email))
		}

		key, err := d.Store.Insert(r.Context(), store.Orders, order)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		var created domain.Order
		if err := d.Store.FindByKey(r.Context(), store.Orders, key, &created); err != nil {
			respondError(w, d.Logger, storeErr(err, "order"))
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func UpdateOrder(d deps.Deps) http.HandlerFunc {
	router := domain.NewRouter(d.Now)

	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpUpdateOrder, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		key := chi.URLParam(r, "id")
		var order domain.Order
		if err := d.Store.FindByKey(r.Context(), store.Orders, key, &order); err != nil {
			respondError(w, d.Logger, storeErr(err, "order"))
			return
		}

		var patch domain.OrderPatch
		if err := decodeBody(r, &patch); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		u, err := router.OrderUpdate(order.Status, patch)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}

		matched, err := d.Store.Update(r.Context(), store.Orders, key, u)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		if !matched {
			// The status guard lost a race with a concurrent update.
			respondError(w, d.Logger, &domain.Error{
				Kind:    domain.ErrInvalidTransition,
				Message: "order status changed concurrently, re-read and retry",
			})
			return
		}

		if err := d.Store.FindByKey(r.Context(), store.Orders, key, &order); err != nil {
			respondError(w, d.Logger, storeErr(err, "order"))
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/deps"
	"github.com/MrSnakeDoc/storefront/internal/httpserver/mw"
	"github.com/MrSnakeDoc/storefront/internal/store"
)

type userListResponse struct {
	Users      []domain.User     `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
}

func ListUsers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpListUsers, ""); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		p := listParams(r)
		users := []domain.User{}
		total, err := d.Store.Find(r.Context(), store.Users, domain.UserQuery(p), &users)
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}
		respondJSON(w, http.StatusOK, userListResponse{Users: users, Pagination: domain.Paginate(p, total)})
	}
}

func findUserByEmail(r *http.Request, d deps.Deps, email string, out *domain.User) error {
	return d.Store.FindOne(r.Context(), store.Users, store.Query{
		Equals: map[string]any{"email": email},
	}, out)
}

// GetUser serves a profile to its owner only; the admin role does not
// override here.
func GetUser(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		if err := domain.Authorize(mw.IdentityFrom(r.Context()), domain.OpReadUser, email); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var user domain.User
		if err := findUserByEmail(r, d, email, &user); err != nil {
			respondError(w, d.Logger, storeErr(err, "user"))
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// UpdateUser updates the caller's own profile, creating it on first write.
func UpdateUser(d deps.Deps) http.HandlerFunc {
	router := domain.NewRouter(d.Now)

	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		id := mw.IdentityFrom(r.Context())
		if err := domain.Authorize(id, domain.OpUpdateUser, email); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var fields map[string]any
		if err := decodeBody(r, &fields); err != nil {
			respondError(w, d.Logger, err)
			return
		}

		var user domain.User
		err := findUserByEmail(r, d, email, &user)
		if errors.Is(err, store.ErrNotFound) {
			user, err = createProfile(r, d, id, fields)
			if err != nil {
				respondError(w, d.Logger, err)
				return
			}
			respondJSON(w, http.StatusCreated, user)
			return
		}
		if err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		u, err := router.UserUpdate(fields)
		if err != nil {
			respondError(w, d.Logger, err)
			return
		}
		if _, err := d.Store.Update(r.Context(), store.Users, user.ID.Hex(), u); err != nil {
			respondError(w, d.Logger, domain.StoreError(err))
			return
		}

		if err := findUserByEmail(r, d, email, &user); err != nil {
			respondError(w, d.Logger, storeErr(err, "user"))
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// createProfile makes the first-write profile for the caller. Identity
// fields come from the token; protected payload fields are ignored.
func createProfile(r *http.Request, d deps.Deps, id *domain.Identity, fields map[string]any) (domain.User, error) {
	now := d.Now()
	user := domain.User{
		Email:     id.Email,
		SubjectID: id.SubjectID,
		Role:      domain.RoleUser,
		Cart:      []domain.CartItem{},
		Wishlist:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	if phone, ok := fields["phone"].(string); ok {
		user.Phone = phone
	}
	if address, ok := fields["address"].(string); ok {
		user.Address = address
	}

	key, err := d.Store.Insert(r.Context(), store.Users, user)
	if err != nil {
		return domain.User{}, domain.StoreError(err)
	}
	if err := d.Store.FindByKey(r.Context(), store.Users, key, &user); err != nil {
		return domain.User{}, domain.StoreError(err)
	}
	return user, nil
}

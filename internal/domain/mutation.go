package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/storefront/internal/store"
)

// Mutation intents. A blog update payload carries at most one of these
// wrapper keys; anything else is a generic replace-fields payload.

type AddComment struct {
	Content  string `json:"content"`
	Author   string `json:"author"`
	AuthorID string `json:"authorId"`
	ReplyTo  string `json:"replyTo,omitempty"`
}

type ToggleLike struct {
	UserID   string `json:"userId"`
	IsLiking bool   `json:"isLiking"`
}

type ToggleBookmark struct {
	UserID        string `json:"userId"`
	IsBookmarking bool   `json:"isBookmarking"`
}

// BlogMutation is the discriminated union of blog update intents. Exactly
// one branch is acted upon; when a payload carries several wrapper keys the
// declaration order below is the precedence, first match wins.
type BlogMutation struct {
	AddComment     *AddComment     `json:"addComment,omitempty"`
	IncrementViews bool            `json:"incrementViews,omitempty"`
	ToggleLike     *ToggleLike     `json:"toggleLike,omitempty"`
	ToggleBookmark *ToggleBookmark `json:"toggleBookmark,omitempty"`

	// Fields holds the remaining top-level keys for the replace-fields
	// fallback. Intent wrapper keys are stripped out during parsing.
	Fields map[string]any `json:"-"`
}

var intentKeys = []string{"addComment", "incrementViews", "toggleLike", "toggleBookmark"}

// ParseBlogMutation decodes a raw update payload into the intent union.
func ParseBlogMutation(raw []byte) (BlogMutation, error) {
	var m BlogMutation
	if err := json.Unmarshal(raw, &m); err != nil {
		return BlogMutation{}, Validationf("malformed update payload")
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return BlogMutation{}, Validationf("malformed update payload")
	}
	for _, k := range intentKeys {
		delete(fields, k)
	}
	m.Fields = fields
	return m, nil
}

// IsIntent reports whether the mutation carries an intent wrapper rather
// than a replace-fields payload.
func (m BlogMutation) IsIntent() bool {
	return m.AddComment != nil || m.IncrementViews || m.ToggleLike != nil || m.ToggleBookmark != nil
}

// Op returns the operation the payload must be authorized as, resolved with
// the same precedence BlogUpdate acts on. Counting a view only needs read
// access, reactions need an authenticated identity, and the replace-fields
// fallback needs edit rights on the blog.
func (m BlogMutation) Op() Operation {
	switch {
	case m.AddComment != nil:
		return OpReactBlog
	case m.IncrementViews:
		return OpReadBlog
	case m.ToggleLike != nil, m.ToggleBookmark != nil:
		return OpReactBlog
	default:
		return OpEditBlog
	}
}

// systemFields are writable only by the system; client payloads that name
// them are silently dropped.
var systemFields = map[string]bool{
	"id":        true,
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// guardedBlogFields have dedicated intents and atomicity invariants; letting
// a replace-fields payload set them would break likes == |likedBy|.
var guardedBlogFields = map[string]bool{
	"views":        true,
	"likes":        true,
	"likedBy":      true,
	"bookmarkedBy": true,
	"comments":     true,
	"authorId":     true,
	"readTime":     true,
}

// Router classifies mutation payloads into single atomic store update
// descriptors. It owns server-assigned values (ids, timestamps) so that
// handlers stay declarative.
type Router struct {
	now   func() time.Time
	newID func() string
}

func NewRouter(now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{now: now, newID: uuid.NewString}
}

// BlogUpdate resolves a blog mutation into one update descriptor, following
// the intent precedence: addComment, incrementViews, toggleLike,
// toggleBookmark, then generic replace-fields.
func (rt *Router) BlogUpdate(m BlogMutation) (store.Update, error) {
	switch {
	case m.AddComment != nil:
		c := m.AddComment
		if c.Content == "" || c.Author == "" {
			return store.Update{}, Validationf("comment requires content and author")
		}
		comment := Comment{
			ID:        rt.newID(),
			Author:    c.Author,
			AuthorID:  c.AuthorID,
			Content:   c.Content,
			ReplyTo:   c.ReplyTo,
			Likes:     0,
			CreatedAt: rt.now(),
		}
		return store.Update{
			Push: map[string]any{"comments": comment},
			Set:  map[string]any{"updatedAt": rt.now()},
		}, nil

	case m.IncrementViews:
		return store.Update{Inc: map[string]int64{"views": 1}}, nil

	case m.ToggleLike != nil:
		t := m.ToggleLike
		if t.UserID == "" {
			return store.Update{}, Validationf("toggleLike requires userId")
		}
		if t.IsLiking {
			// Guarded so a repeated like matches nothing instead of
			// double-incrementing.
			return store.Update{
				Inc:      map[string]int64{"likes": 1},
				AddToSet: map[string]any{"likedBy": t.UserID},
				When:     []store.Cond{{Field: "likedBy", Op: store.CondNotContains, Value: t.UserID}},
			}, nil
		}
		return store.Update{
			Inc:  map[string]int64{"likes": -1},
			Pull: map[string]any{"likedBy": t.UserID},
			When: []store.Cond{{Field: "likedBy", Op: store.CondContains, Value: t.UserID}},
		}, nil

	case m.ToggleBookmark != nil:
		t := m.ToggleBookmark
		if t.UserID == "" {
			return store.Update{}, Validationf("toggleBookmark requires userId")
		}
		if t.IsBookmarking {
			return store.Update{
				AddToSet: map[string]any{"bookmarkedBy": t.UserID},
				When:     []store.Cond{{Field: "bookmarkedBy", Op: store.CondNotContains, Value: t.UserID}},
			}, nil
		}
		return store.Update{
			Pull: map[string]any{"bookmarkedBy": t.UserID},
			When: []store.Cond{{Field: "bookmarkedBy", Op: store.CondContains, Value: t.UserID}},
		}, nil

	default:
		set := make(map[string]any, len(m.Fields)+2)
		for k, v := range m.Fields {
			if systemFields[k] || guardedBlogFields[k] {
				continue
			}
			set[k] = v
		}
		if len(set) == 0 {
			return store.Update{}, Validationf("update payload has no writable field")
		}
		for k, v := range DerivedFields(store.Blogs, set) {
			set[k] = v
		}
		set["updatedAt"] = rt.now()
		return store.Update{Set: set}, nil
	}
}

// OrderPatch is the admin-facing order mutation surface.
type OrderPatch struct {
	Status          *OrderStatus   `json:"status,omitempty"`
	Payment         *PaymentStatus `json:"payment,omitempty"`
	ShippingAddress *string        `json:"shippingAddress,omitempty"`
}

// OrderUpdate builds the update descriptor for an order patch, validating
// the requested status against the current one. Status changes carry a
// compare-and-swap guard on the current status so concurrent admin updates
// cannot skip a transition.
func (rt *Router) OrderUpdate(current OrderStatus, p OrderPatch) (store.Update, error) {
	if p.Status == nil && p.Payment == nil && p.ShippingAddress == nil {
		return store.Update{}, Validationf("update payload has no recognized order field")
	}

	u := store.Update{Set: map[string]any{"updatedAt": rt.now()}}

	if p.Status != nil {
		if err := CheckTransition(current, *p.Status); err != nil {
			return store.Update{}, err
		}
		u.Set["status"] = *p.Status
		u.When = append(u.When, store.Cond{Field: "status", Op: store.CondEq, Value: current})
	}
	if p.Payment != nil {
		if !ValidPaymentStatus(*p.Payment) {
			return store.Update{}, Validationf("unknown payment status %q", *p.Payment)
		}
		u.Set["payment"] = *p.Payment
	}
	if p.ShippingAddress != nil {
		if *p.ShippingAddress == "" {
			return store.Update{}, Validationf("shippingAddress cannot be empty")
		}
		u.Set["shippingAddress"] = *p.ShippingAddress
	}
	return u, nil
}

// userProtectedFields cannot be changed through the profile update surface.
var userProtectedFields = map[string]bool{
	"role":      true,
	"email":     true,
	"subjectId": true,
}

// UserUpdate builds the replace-fields descriptor for a profile update.
func (rt *Router) UserUpdate(fields map[string]any) (store.Update, error) {
	set := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if systemFields[k] || userProtectedFields[k] {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return store.Update{}, Validationf("update payload has no writable field")
	}
	set["updatedAt"] = rt.now()
	return store.Update{Set: set}, nil
}

// numericProductFields are coerced to numbers on write, accepting both JSON
// numbers and numeric strings.
var numericProductFields = map[string]bool{
	"price":         true,
	"originalPrice": true,
	"stock":         true,
	"rating":        true,
}

// ProductUpdate builds the replace-fields descriptor for a product update.
func (rt *Router) ProductUpdate(fields map[string]any) (store.Update, error) {
	set := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if systemFields[k] {
			continue
		}
		if numericProductFields[k] {
			n, ok := CoerceNumber(v)
			if !ok {
				return store.Update{}, Validationf("field %q must be numeric", k)
			}
			if n < 0 {
				return store.Update{}, Validationf("field %q cannot be negative", k)
			}
			set[k] = n
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return store.Update{}, Validationf("update payload has no writable field")
	}
	set["updatedAt"] = rt.now()
	return store.Update{Set: set}, nil
}

// CoerceNumber converts JSON numbers and numeric strings to float64.
func CoerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

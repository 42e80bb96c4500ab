// Package store defines the document store capability consumed by the rest
// of the application: key-addressed collections with atomic single-document
// conditional updates and simple filtered queries.
package store

import (
	"context"
	"errors"
)

// Collection names one stored document collection.
type Collection string

const (
	Blogs    Collection = "blogs"
	Orders   Collection = "orders"
	Products Collection = "products"
	Users    Collection = "users"
)

var (
	// ErrNotFound is returned when a key or filter resolves to no document.
	ErrNotFound = errors.New("store: document not found")
	// ErrInvalidKey is returned when a key is not a well-formed document id.
	ErrInvalidKey = errors.New("store: invalid document key")
)

// Search describes a case-insensitive substring match ORed across fields.
type Search struct {
	Term   string
	Fields []string
}

// Query describes a listing query: equality filters, optional text search,
// one sort field and skip/limit pagination.
type Query struct {
	Equals    map[string]any
	Search    *Search
	SortField string
	SortDesc  bool
	Skip      int64
	Limit     int64
}

// CondOp is a guard operator for conditional updates.
type CondOp int

const (
	CondEq CondOp = iota
	// CondContains holds when the array field contains the value.
	CondContains
	// CondNotContains holds when the array field does not contain the value.
	CondNotContains
)

// Cond is one guard condition evaluated together with the document key.
// If any condition does not hold, the update matches nothing and is a no-op.
type Cond struct {
	Field string
	Op    CondOp
	Value any
}

// Update is a single atomic update descriptor. All parts apply in one
// store-level operation; there is never a read-modify-write window.
type Update struct {
	Set      map[string]any
	Inc      map[string]int64
	Push     map[string]any
	AddToSet map[string]any
	Pull     map[string]any
	When     []Cond
}

// Empty reports whether the update carries no operation at all.
func (u Update) Empty() bool {
	return len(u.Set) == 0 && len(u.Inc) == 0 && len(u.Push) == 0 &&
		len(u.AddToSet) == 0 && len(u.Pull) == 0
}

// DocumentStore is the storage capability. Implementations must apply each
// Update as one atomic conditional operation on the addressed document.
type DocumentStore interface {
	// Insert stores a new document and returns its key.
	Insert(ctx context.Context, c Collection, doc any) (string, error)

	// FindByKey decodes the document with the given key into out.
	// Returns ErrInvalidKey for malformed keys and ErrNotFound when absent.
	FindByKey(ctx context.Context, c Collection, key string, out any) error

	// FindOne decodes the first document matching the query into out.
	// Returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, c Collection, q Query, out any) error

	// Find decodes the page of documents matching the query into out (a
	// pointer to a slice) and returns the total count before pagination.
	Find(ctx context.Context, c Collection, q Query, out any) (int64, error)

	// Update applies u to the document with the given key. Returns whether a
	// document matched the key plus all guard conditions. matched == false
	// with a nil error means either the document is absent or a guard did
	// not hold; callers disambiguate with FindByKey when it matters.
	Update(ctx context.Context, c Collection, key string, u Update) (bool, error)

	// Delete removes the document with the given key.
	// Returns ErrNotFound when absent.
	Delete(ctx context.Context, c Collection, key string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Package memstore is an in-memory DocumentStore used by tests and local
// development. Documents are held as JSON-shaped maps; every update is
// applied under one lock, which gives the same single-operation atomicity
// the production backend guarantees per document.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MrSnakeDoc/storefront/internal/store"
)

type Store struct {
	mu   sync.RWMutex
	data map[store.Collection]map[string]map[string]any
}

func New() *Store {
	return &Store{data: make(map[store.Collection]map[string]map[string]any)}
}

func (s *Store) collection(c store.Collection) map[string]map[string]any {
	col, ok := s.data[c]
	if !ok {
		col = make(map[string]map[string]any)
		s.data[c] = col
	}
	return col
}

func (s *Store) Insert(ctx context.Context, c store.Collection, doc any) (string, error) {
	m, err := toMap(doc)
	if err != nil {
		return "", err
	}

	key, _ := m["id"].(string)
	if key == "" || key == primitive.NilObjectID.Hex() {
		key = primitive.NewObjectID().Hex()
		m["id"] = key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(c)[key] = m
	return key, nil
}

func (s *Store) FindByKey(ctx context.Context, c store.Collection, key string, out any) error {
	if _, err := primitive.ObjectIDFromHex(key); err != nil {
		return store.ErrInvalidKey
	}

	s.mu.RLock()
	doc, ok := s.collection(c)[key]
	s.mu.RUnlock()
	if !ok {
		return store.ErrNotFound
	}
	return decode(doc, out)
}

func (s *Store) FindOne(ctx context.Context, c store.Collection, q store.Query, out any) error {
	s.mu.RLock()
	matches := s.match(c, q)
	s.mu.RUnlock()

	if len(matches) == 0 {
		return store.ErrNotFound
	}
	sortDocs(matches, q)
	return decode(matches[0], out)
}

func (s *Store) Find(ctx context.Context, c store.Collection, q store.Query, out any) (int64, error) {
	s.mu.RLock()
	matches := s.match(c, q)
	s.mu.RUnlock()

	total := int64(len(matches))
	sortDocs(matches, q)

	if q.Skip > 0 {
		if q.Skip >= total {
			matches = nil
		} else {
			matches = matches[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(matches)) > q.Limit {
		matches = matches[:q.Limit]
	}
	if matches == nil {
		matches = []map[string]any{}
	}
	return total, decode(matches, out)
}

func (s *Store) Update(ctx context.Context, c store.Collection, key string, u store.Update) (bool, error) {
	if _, err := primitive.ObjectIDFromHex(key); err != nil {
		return false, store.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(c)[key]
	if !ok {
		return false, nil
	}
	for _, cond := range u.When {
		if !holds(doc, cond) {
			return false, nil
		}
	}

	for f, v := range u.Set {
		nv, err := normalize(v)
		if err != nil {
			return false, err
		}
		doc[f] = nv
	}
	for f, delta := range u.Inc {
		cur, _ := doc[f].(float64)
		doc[f] = cur + float64(delta)
	}
	for f, v := range u.Push {
		nv, err := normalize(v)
		if err != nil {
			return false, err
		}
		doc[f] = append(asSlice(doc[f]), nv)
	}
	for f, v := range u.AddToSet {
		nv, err := normalize(v)
		if err != nil {
			return false, err
		}
		if !sliceContains(doc[f], nv) {
			doc[f] = append(asSlice(doc[f]), nv)
		}
	}
	for f, v := range u.Pull {
		nv, err := normalize(v)
		if err != nil {
			return false, err
		}
		kept := make([]any, 0)
		for _, el := range asSlice(doc[f]) {
			if fmt.Sprint(el) != fmt.Sprint(nv) {
				kept = append(kept, el)
			}
		}
		doc[f] = kept
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, key string) error {
	if _, err := primitive.ObjectIDFromHex(key); err != nil {
		return store.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(c)
	if _, ok := col[key]; !ok {
		return store.ErrNotFound
	}
	delete(col, key)
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

// match returns shallow references to matching docs; callers must not hand
// them out without decode (which deep-copies through JSON).
func (s *Store) match(c store.Collection, q store.Query) []map[string]any {
	var matches []map[string]any
	for _, doc := range s.collection(c) {
		if !matchesQuery(doc, q) {
			continue
		}
		matches = append(matches, doc)
	}
	return matches
}

func matchesQuery(doc map[string]any, q store.Query) bool {
	for f, want := range q.Equals {
		if fmt.Sprint(doc[f]) != fmt.Sprint(want) {
			return false
		}
	}
	if q.Search != nil && q.Search.Term != "" {
		term := strings.ToLower(q.Search.Term)
		found := false
		for _, f := range q.Search.Fields {
			if v, ok := doc[f].(string); ok && strings.Contains(strings.ToLower(v), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func holds(doc map[string]any, cond store.Cond) bool {
	switch cond.Op {
	case store.CondEq:
		return fmt.Sprint(doc[cond.Field]) == fmt.Sprint(cond.Value)
	case store.CondContains:
		return sliceContains(doc[cond.Field], cond.Value)
	case store.CondNotContains:
		return !sliceContains(doc[cond.Field], cond.Value)
	}
	return false
}

func sortDocs(docs []map[string]any, q store.Query) {
	if q.SortField == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i][q.SortField], docs[j][q.SortField]
		if q.SortDesc {
			return less(b, a)
		}
		return less(a, b)
	})
}

func less(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		return av < bv
	case string:
		bv, _ := b.(string)
		return av < bv
	case nil:
		return b != nil
	}
	return false
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func sliceContains(v any, el any) bool {
	want := fmt.Sprint(el)
	for _, got := range asSlice(v) {
		if fmt.Sprint(got) == want {
			return true
		}
	}
	return false
}

// toMap converts an arbitrary document to its JSON map shape.
func toMap(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("memstore: encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("memstore: decode document: %w", err)
	}
	return m, nil
}

// normalize converts a field value to its JSON shape so later reads and
// guard checks see the same representation the backend would store.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memstore: encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("memstore: decode value: %w", err)
	}
	return out, nil
}

// decode deep-copies v into out through JSON.
func decode(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memstore: encode result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("memstore: decode result: %w", err)
	}
	return nil
}

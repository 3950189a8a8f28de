// Package memory is an in-process Store.  It backs tests and the
// single-binary demo mode (STORE_DRIVER=memory).
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

type collection struct {
	order []string
	docs  map[string]json.RawMessage
}

// Store keeps documents in maps guarded by a single RWMutex.  Every
// returned body is a copy, so callers can never mutate stored state.
type Store struct {
	mu    sync.RWMutex
	colls map[store.Collection]*collection
}

// New returns an empty store.
func New() *Store {
	return &Store{colls: make(map[store.Collection]*collection)}
}

func (s *Store) coll(c store.Collection) *collection {
	col, ok := s.colls[c]
	if !ok {
		col = &collection{docs: make(map[string]json.RawMessage)}
		s.colls[c] = col
	}
	return col
}

func clone(b json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, c store.Collection, f *store.Filter) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("list", c, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.colls[c]
	if !ok {
		return []store.Record{}, nil
	}
	out := make([]store.Record, 0, len(col.order))
	for _, id := range col.order {
		body := col.docs[id]
		if f != nil && !matches(body, f) {
			continue
		}
		out = append(out, store.Record{ID: id, Body: clone(body)})
	}
	return out, nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, store.Unavailable("get", c, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if col, ok := s.colls[c]; ok {
		if body, ok := col.docs[id]; ok {
			return store.Record{ID: id, Body: clone(body)}, nil
		}
	}
	return store.Record{}, store.NotFound(c, id)
}

// Create implements store.Store.
func (s *Store) Create(ctx context.Context, c store.Collection, rec store.Record) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, store.Unavailable("create", c, err)
	}
	if rec.ID == "" {
		return store.Record{}, fmt.Errorf("create %s: %w: empty id", c, model.ErrInvalid)
	}
	body, err := store.WithID(rec.Body, rec.ID)
	if err != nil {
		return store.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.coll(c)
	if _, exists := col.docs[rec.ID]; exists {
		return store.Record{}, store.Conflict(c, rec.ID)
	}
	col.docs[rec.ID] = body
	col.order = append(col.order, rec.ID)
	return store.Record{ID: rec.ID, Body: clone(body)}, nil
}

// Replace implements store.Store.
func (s *Store) Replace(ctx context.Context, c store.Collection, id string, body json.RawMessage) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, store.Unavailable("replace", c, err)
	}
	body, err := store.WithID(body, id)
	if err != nil {
		return store.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.colls[c]
	if !ok {
		return store.Record{}, store.NotFound(c, id)
	}
	if _, exists := col.docs[id]; !exists {
		return store.Record{}, store.NotFound(c, id)
	}
	col.docs[id] = body
	return store.Record{ID: id, Body: clone(body)}, nil
}

// Patch implements store.Store.
func (s *Store) Patch(ctx context.Context, c store.Collection, id string, fields map[string]any) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, store.Unavailable("patch", c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.colls[c]
	if !ok {
		return store.Record{}, store.NotFound(c, id)
	}
	cur, exists := col.docs[id]
	if !exists {
		return store.Record{}, store.NotFound(c, id)
	}
	var doc map[string]any
	if err := json.Unmarshal(cur, &doc); err != nil {
		return store.Record{}, store.Unavailable("patch", c, err)
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return store.Record{}, fmt.Errorf("patch %s: %w: %v", c, model.ErrInvalid, err)
	}
	col.docs[id] = body
	return store.Record{ID: id, Body: clone(body)}, nil
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	if err := ctx.Err(); err != nil {
		return store.Unavailable("delete", c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.colls[c]
	if !ok {
		return store.NotFound(c, id)
	}
	if _, exists := col.docs[id]; !exists {
		return store.NotFound(c, id)
	}
	delete(col.docs, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func matches(body json.RawMessage, f *store.Filter) bool {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return false
	}
	v, ok := doc[f.Field]
	if !ok {
		return false
	}
	return textOf(v) == f.Value
}

// textOf renders a decoded JSON scalar the way JSON_UNQUOTE and ->> do.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

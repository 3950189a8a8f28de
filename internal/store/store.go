// Package store defines the passive resource store shared by the staff and
// customer consoles.  The store is a set of named collections of JSON
// documents addressed by id.  It has no transactions, no concurrency control
// and no business logic: every rule of the reconciliation protocol lives in
// the packages above it.  Concurrent writers to the same record resolve by
// last write wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/menuq/internal/model"
)

// Collection names one entity collection.
type Collection string

const (
	Tables      Collection = "tables"
	MenuItems   Collection = "menuItems"
	Orders      Collection = "orders"
	Bills       Collection = "bills"
	DoneSignals Collection = "doneSignals"
	// TableIDs holds one claim per table id ever assigned.  Claims are
	// never deleted, so a removed table's id is not handed out again.
	TableIDs Collection = "tableIds"
)

// Collections lists every collection the application uses.  SQL backends
// use it for validation only; all collections share one physical table.
var Collections = []Collection{Tables, MenuItems, Orders, Bills, DoneSignals, TableIDs}

// Record is one stored document.  Body always contains an "id" member
// equal to ID.
type Record struct {
	ID   string
	Body json.RawMessage
}

// Filter restricts List to documents whose top-level Field equals Value.
// Numbers and strings compare by their textual form, so a tableId stored
// as 5 matches the filter value "5".
type Filter struct {
	Field string
	Value string
}

// Where builds an equality filter.
func Where(field, value string) *Filter { return &Filter{Field: field, Value: value} }

// Store is the interface the core consumes.  Implementations must return
// errors that wrap model.ErrNotFound, model.ErrConflict or
// model.ErrStoreUnavailable so callers can classify them with errors.Is.
type Store interface {
	// List returns the documents of c in insertion order, optionally
	// filtered.  A nil filter returns the whole collection.
	List(ctx context.Context, c Collection, f *Filter) ([]Record, error)
	// Get returns one document or model.ErrNotFound.
	Get(ctx context.Context, c Collection, id string) (Record, error)
	// Create inserts rec.  An existing id yields model.ErrConflict.
	Create(ctx context.Context, c Collection, rec Record) (Record, error)
	// Replace overwrites the whole document.  A missing id yields model.ErrNotFound.
	Replace(ctx context.Context, c Collection, id string, body json.RawMessage) (Record, error)
	// Patch merges top-level fields into the document.
	Patch(ctx context.Context, c Collection, id string, fields map[string]any) (Record, error)
	// Delete removes the document.  A missing id yields model.ErrNotFound:
	// deleting twice is an error, not a no-op.
	Delete(ctx context.Context, c Collection, id string) error
	// Close releases backend resources.
	Close() error
}

// Encode marshals v into a Record with the given id.
func Encode(id string, v any) (Record, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s: %w", id, err)
	}
	body, err = WithID(body, id)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Body: body}, nil
}

// Decode unmarshals a record body into T.
func Decode[T any](rec Record) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Body, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", rec.ID, err)
	}
	return v, nil
}

// DecodeAll unmarshals every record, failing on the first bad body.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WithID returns body with its top-level "id" member set to id.  Backends
// call it on create and replace so the body and the address never disagree.
func WithID(body json.RawMessage, id string) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: body is not a JSON object: %v", model.ErrInvalid, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	doc["id"] = id
	return json.Marshal(doc)
}

// PatchBody marshals fields as a merge patch without the "id" member.
// fields itself is left untouched.
func PatchBody(c Collection, fields map[string]any) (json.RawMessage, error) {
	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != "id" {
			patch[k] = v
		}
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w: %v", c, model.ErrInvalid, err)
	}
	return body, nil
}

// Unavailable wraps a backend failure as model.ErrStoreUnavailable.
func Unavailable(op string, c Collection, err error) error {
	return fmt.Errorf("%s %s: %w: %v", op, c, model.ErrStoreUnavailable, err)
}

// NotFound builds the error for a missing document.
func NotFound(c Collection, id string) error {
	return fmt.Errorf("%s/%s: %w", c, id, model.ErrNotFound)
}

// Conflict builds the error for a duplicate id.
func Conflict(c Collection, id string) error {
	return fmt.Errorf("%s/%s: %w", c, id, model.ErrConflict)
}

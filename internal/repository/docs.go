package repository

import (
	"context"

	"github.com/iliyamo/menuq/internal/store"
)

// docs is the typed view of one store collection shared by the
// repositories below.  It only translates between records and model
// values; errors from the store pass through unchanged so callers can
// match them with errors.Is.
type docs[T any] struct {
	s store.Store
	c store.Collection
}

func (d docs[T]) list(ctx context.Context, f *store.Filter) ([]T, error) {
	recs, err := d.s.List(ctx, d.c, f)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[T](recs)
}

func (d docs[T]) get(ctx context.Context, id string) (T, error) {
	rec, err := d.s.Get(ctx, d.c, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return store.Decode[T](rec)
}

func (d docs[T]) create(ctx context.Context, id string, v T) (T, error) {
	rec, err := store.Encode(id, v)
	if err != nil {
		var zero T
		return zero, err
	}
	if rec, err = d.s.Create(ctx, d.c, rec); err != nil {
		var zero T
		return zero, err
	}
	return store.Decode[T](rec)
}

func (d docs[T]) replace(ctx context.Context, id string, v T) (T, error) {
	rec, err := store.Encode(id, v)
	if err != nil {
		var zero T
		return zero, err
	}
	if rec, err = d.s.Replace(ctx, d.c, id, rec.Body); err != nil {
		var zero T
		return zero, err
	}
	return store.Decode[T](rec)
}

func (d docs[T]) patch(ctx context.Context, id string, fields map[string]any) (T, error) {
	rec, err := d.s.Patch(ctx, d.c, id, fields)
	if err != nil {
		var zero T
		return zero, err
	}
	return store.Decode[T](rec)
}

func (d docs[T]) delete(ctx context.Context, id string) error {
	return d.s.Delete(ctx, d.c, id)
}

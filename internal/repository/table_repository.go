package repository

import (
	"context"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// TableRepo provides access to the tables collection.  A stored table
// carries only its id and QR target; occupancy is derived elsewhere.
type TableRepo struct {
	d docs[model.Table]
}

// NewTableRepo constructs a TableRepo over the given store.
func NewTableRepo(s store.Store) *TableRepo {
	return &TableRepo{d: docs[model.Table]{s: s, c: store.Tables}}
}

// List returns every table in insertion order.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	return r.d.list(ctx, nil)
}

// Get returns the table with the given id or model.ErrNotFound.
func (r *TableRepo) Get(ctx context.Context, id model.TableID) (model.Table, error) {
	return r.d.get(ctx, id.String())
}

// Create inserts t.  A table with the same id yields model.ErrConflict.
func (r *TableRepo) Create(ctx context.Context, t model.Table) (model.Table, error) {
	return r.d.create(ctx, t.ID.String(), t)
}

// Delete removes the table.  Its orders, bill and done signal are left
// alone; FreeTable is the operation that clears those.
func (r *TableRepo) Delete(ctx context.Context, id model.TableID) error {
	return r.d.delete(ctx, id.String())
}

// TableIDRepo is the append-only register of assigned table ids.
type TableIDRepo struct {
	d docs[model.TableIDClaim]
}

func NewTableIDRepo(s store.Store) *TableIDRepo {
	return &TableIDRepo{d: docs[model.TableIDClaim]{s: s, c: store.TableIDs}}
}

func (r *TableIDRepo) List(ctx context.Context) ([]model.TableIDClaim, error) {
	return r.d.list(ctx, nil)
}

// Claim reserves id.  An id claimed before yields model.ErrConflict.
func (r *TableIDRepo) Claim(ctx context.Context, id model.TableID) error {
	_, err := r.d.create(ctx, id.String(), model.TableIDClaim{ID: id})
	return err
}

package repository

import (
	"context"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// DoneSignalRepo provides access to the doneSignals collection.  A signal's
// id is the table id, so the collection behaves as a set of tables that
// asked for the check.
type DoneSignalRepo struct {
	d docs[model.DoneSignal]
}

// NewDoneSignalRepo constructs a DoneSignalRepo over the given store.
func NewDoneSignalRepo(s store.Store) *DoneSignalRepo {
	return &DoneSignalRepo{d: docs[model.DoneSignal]{s: s, c: store.DoneSignals}}
}

func (r *DoneSignalRepo) List(ctx context.Context) ([]model.DoneSignal, error) {
	return r.d.list(ctx, nil)
}

func (r *DoneSignalRepo) Get(ctx context.Context, id model.TableID) (model.DoneSignal, error) {
	return r.d.get(ctx, id.String())
}

// Create adds the signal for a table.  A second create for the same table
// yields model.ErrConflict, which callers treat as "already signalled".
func (r *DoneSignalRepo) Create(ctx context.Context, id model.TableID) (model.DoneSignal, error) {
	return r.d.create(ctx, id.String(), model.DoneSignal{ID: id})
}

func (r *DoneSignalRepo) Delete(ctx context.Context, id model.TableID) error {
	return r.d.delete(ctx, id.String())
}

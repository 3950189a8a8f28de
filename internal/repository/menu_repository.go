package repository

import (
	"context"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// MenuRepo provides access to the menuItems collection.
type MenuRepo struct {
	d docs[model.MenuItem]
}

// NewMenuRepo constructs a MenuRepo over the given store.
func NewMenuRepo(s store.Store) *MenuRepo {
	return &MenuRepo{d: docs[model.MenuItem]{s: s, c: store.MenuItems}}
}

// List returns the whole menu.  Filtering by category, diet type or
// search text is done by the caller on this snapshot.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	return r.d.list(ctx, nil)
}

func (r *MenuRepo) Get(ctx context.Context, id string) (model.MenuItem, error) {
	return r.d.get(ctx, id)
}

func (r *MenuRepo) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	return r.d.create(ctx, m.ID, m)
}

// Replace overwrites every field of the item.
func (r *MenuRepo) Replace(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	return r.d.replace(ctx, m.ID, m)
}

// SetAvailable patches only the availability flag, leaving concurrent
// edits to other fields intact.
func (r *MenuRepo) SetAvailable(ctx context.Context, id string, available bool) (model.MenuItem, error) {
	return r.d.patch(ctx, id, map[string]any{"available": available})
}

func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	return r.d.delete(ctx, id)
}

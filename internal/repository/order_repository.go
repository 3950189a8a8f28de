package repository

import (
	"context"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// OrderRepo provides access to the orders collection.  Status changes are
// written with a full replace of the order document; concurrent writers to
// the same order resolve by last write wins.
type OrderRepo struct {
	d docs[model.Order]
}

// NewOrderRepo constructs an OrderRepo over the given store.
func NewOrderRepo(s store.Store) *OrderRepo {
	return &OrderRepo{d: docs[model.Order]{s: s, c: store.Orders}}
}

// List returns every order.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	return r.d.list(ctx, nil)
}

// ListByTable returns the orders whose tableId equals id.
func (r *OrderRepo) ListByTable(ctx context.Context, id model.TableID) ([]model.Order, error) {
	return r.d.list(ctx, store.Where("tableId", id.String()))
}

func (r *OrderRepo) Get(ctx context.Context, id string) (model.Order, error) {
	return r.d.get(ctx, id)
}

func (r *OrderRepo) Create(ctx context.Context, o model.Order) (model.Order, error) {
	return r.d.create(ctx, o.ID, o)
}

func (r *OrderRepo) Replace(ctx context.Context, o model.Order) (model.Order, error) {
	return r.d.replace(ctx, o.ID, o)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.d.delete(ctx, id)
}

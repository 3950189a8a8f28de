package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// BillRepo provides access to the bills collection.  Bills are addressed
// by their own id but always looked up by table.
type BillRepo struct {
	d docs[model.Bill]
}

// NewBillRepo constructs a BillRepo over the given store.
func NewBillRepo(s store.Store) *BillRepo {
	return &BillRepo{d: docs[model.Bill]{s: s, c: store.Bills}}
}

// ListByTable returns every bill stored for the table.  Normally there is
// at most one; a concurrent regeneration can briefly leave two.
func (r *BillRepo) ListByTable(ctx context.Context, id model.TableID) ([]model.Bill, error) {
	return r.d.list(ctx, store.Where("tableId", id.String()))
}

// GetByTable returns the most recently created bill for the table, or
// model.ErrNotFound when the table has none.
func (r *BillRepo) GetByTable(ctx context.Context, id model.TableID) (model.Bill, error) {
	bills, err := r.ListByTable(ctx, id)
	if err != nil {
		return model.Bill{}, err
	}
	if len(bills) == 0 {
		return model.Bill{}, fmt.Errorf("bill for table %s: %w", id, model.ErrNotFound)
	}
	return bills[len(bills)-1], nil
}

func (r *BillRepo) Create(ctx context.Context, b model.Bill) (model.Bill, error) {
	return r.d.create(ctx, b.ID, b)
}

func (r *BillRepo) Delete(ctx context.Context, id string) error {
	return r.d.delete(ctx, id)
}

package service

import (
	"context"
	"errors"

	"github.com/iliyamo/menuq/internal/billing"
	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/queue"
)

// GenerateBill aggregates every order of the table into a bill, replacing
// any bill generated earlier.  With no orders it returns
// ErrNoOrdersForTable and stores nothing.  An order submitted while the
// bill is being built may or may not be included; staff regenerate if so.
func (s *Service) GenerateBill(ctx context.Context, tableID model.TableID) (model.Bill, error) {
	orders, err := s.orders.ListByTable(ctx, tableID)
	if err != nil {
		return model.Bill{}, err
	}
	bill, err := billing.Aggregate(tableID, orders)
	if err != nil {
		return model.Bill{}, err
	}

	previous, err := s.bills.ListByTable(ctx, tableID)
	if err != nil {
		return model.Bill{}, err
	}
	for _, b := range previous {
		if err := s.bills.Delete(ctx, b.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.Bill{}, err
		}
	}

	if bill.ID, err = s.newID(); err != nil {
		return model.Bill{}, err
	}
	created, err := s.bills.Create(ctx, bill)
	if err != nil {
		return model.Bill{}, err
	}
	s.log.Info("bill generated", "table", tableID, "bill", created.ID, "total_cents", created.TotalCents, "replaced", len(previous))
	ev := queue.NewEvent(queue.BillGenerated, tableID.String())
	ev.BillID = created.ID
	ev.Items = len(created.Items)
	ev.TotalCents = created.TotalCents
	s.publish(ev)
	return created, nil
}

// GetBill returns the current bill of the table or ErrNotFound.
func (s *Service) GetBill(ctx context.Context, tableID model.TableID) (model.Bill, error) {
	return s.bills.GetByTable(ctx, tableID)
}

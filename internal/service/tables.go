package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/occupancy"
	"github.com/iliyamo/menuq/internal/queue"
)

// ListTables returns every table in creation order.
func (s *Service) ListTables(ctx context.Context) ([]model.Table, error) {
	return s.tables.List(ctx)
}

// AddTable creates the next table with its signed QR target.  Ids come
// from a high-water mark over every id ever claimed, so an id freed by
// RemoveTable is never reused and cannot inherit the removed table's
// leftover orders or done signal.  Two consoles adding at once compute the
// same id; the loser sees ErrConflict on the claim and retries with a
// fresh listing.
func (s *Service) AddTable(ctx context.Context) (model.Table, error) {
	var lastErr error
	for attempt := 0; attempt < s.addAttempts; attempt++ {
		tables, err := s.tables.List(ctx)
		if err != nil {
			return model.Table{}, err
		}
		claims, err := s.ids.List(ctx)
		if err != nil {
			return model.Table{}, err
		}
		id := nextTableID(tables, claims)
		if err := s.ids.Claim(ctx, id); err != nil {
			if !errors.Is(err, model.ErrConflict) {
				return model.Table{}, err
			}
			lastErr = err
			s.log.Debug("table id claimed elsewhere, retrying", "table", id, "attempt", attempt+1)
			continue
		}
		target, err := s.qr.Target(id.String())
		if err != nil {
			return model.Table{}, err
		}
		t, err := s.tables.Create(ctx, model.Table{ID: id, QRTarget: target})
		if err == nil {
			s.log.Info("table added", "table", id)
			s.publish(queue.NewEvent(queue.TableAdded, id.String()))
			return t, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return model.Table{}, err
		}
		lastErr = err
		s.log.Debug("table id taken, retrying", "table", id, "attempt", attempt+1)
	}
	return model.Table{}, fmt.Errorf("add table after %d attempts: %w", s.addAttempts, lastErr)
}

// nextTableID is one past the highest id among live tables and claims.
// Tables created before claims existed count through the first list.
func nextTableID(tables []model.Table, claims []model.TableIDClaim) model.TableID {
	var highest uint64
	for _, t := range tables {
		highest = max(highest, t.ID.Uint())
	}
	for _, c := range claims {
		highest = max(highest, c.ID.Uint())
	}
	return model.TableIDFromInt(highest + 1)
}

// RemoveTable deletes a table record.  It fails with ErrNotFound when the
// table does not exist.  Orders, bill and done signal of the table are not
// touched; staff free a table before removing it.
func (s *Service) RemoveTable(ctx context.Context, id model.TableID) error {
	if _, err := s.tables.Get(ctx, id); err != nil {
		return err
	}
	if err := s.tables.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("table removed", "table", id)
	s.publish(queue.NewEvent(queue.TableRemoved, id.String()))
	return nil
}

// Free-table cleanup steps, as reported in StepFailure.Step.
const (
	StepListOrders  = "list-orders"
	StepDeleteOrder = "delete-order"
	StepListBills   = "list-bills"
	StepDeleteBill  = "delete-bill"
	StepDeleteDone  = "delete-done-signal"
)

// StepFailure records one cleanup step that did not succeed.
type StepFailure struct {
	Step  string `json:"step"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// FreeTableResult summarises a FreeTable run.
type FreeTableResult struct {
	TableID           model.TableID `json:"tableId"`
	OrdersDeleted     int           `json:"ordersDeleted"`
	BillsDeleted      int           `json:"billsDeleted"`
	DoneSignalCleared bool          `json:"doneSignalCleared"`
	Failures          []StepFailure `json:"failures,omitempty"`
}

// Partial reports whether any step failed.
func (r FreeTableResult) Partial() bool { return len(r.Failures) > 0 }

// FreeTable clears a sitting: every order of the table, its bill and its
// done signal.  The store has no transactions, so the three steps run in
// sequence and a failure in one never stops the next.  A failed order
// deletion is retried once.  Records that are already gone (a concurrent
// free) count as done.  The table record itself stays.
func (s *Service) FreeTable(ctx context.Context, id model.TableID) FreeTableResult {
	res := FreeTableResult{TableID: id}
	fail := func(step, recID string, err error) {
		s.log.Warn("free table step failed", "table", id, "step", step, "id", recID, "error", err)
		res.Failures = append(res.Failures, StepFailure{Step: step, ID: recID, Error: err.Error()})
	}

	orders, err := s.orders.ListByTable(ctx, id)
	if err != nil {
		fail(StepListOrders, "", err)
	}
	for _, o := range orders {
		err := s.orders.Delete(ctx, o.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			err = s.orders.Delete(ctx, o.ID)
		}
		switch {
		case err == nil:
			res.OrdersDeleted++
		case errors.Is(err, model.ErrNotFound):
		default:
			fail(StepDeleteOrder, o.ID, err)
		}
	}

	bills, err := s.bills.ListByTable(ctx, id)
	if err != nil {
		fail(StepListBills, "", err)
	}
	for _, b := range bills {
		switch err := s.bills.Delete(ctx, b.ID); {
		case err == nil:
			res.BillsDeleted++
		case errors.Is(err, model.ErrNotFound):
		default:
			fail(StepDeleteBill, b.ID, err)
		}
	}

	switch err := s.done.Delete(ctx, id); {
	case err == nil:
		res.DoneSignalCleared = true
	case errors.Is(err, model.ErrNotFound):
	default:
		fail(StepDeleteDone, id.String(), err)
	}

	s.log.Info("table freed", "table", id, "orders", res.OrdersDeleted, "bills", res.BillsDeleted, "partial", res.Partial())
	ev := queue.NewEvent(queue.TableFreed, id.String())
	ev.Items = res.OrdersDeleted
	ev.Partial = res.Partial()
	s.publish(ev)
	return res
}

// Board fetches the tables, orders and done signals and classifies every
// table.  The three reads are independent snapshots; a write landing
// between them shows up on the next call.
func (s *Service) Board(ctx context.Context) ([]occupancy.TableState, error) {
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	done, err := s.done.List(ctx)
	if err != nil {
		return nil, err
	}
	return occupancy.Resolve(tables, orders, done), nil
}

// GetOccupancy classifies one table from fresh reads.
func (s *Service) GetOccupancy(ctx context.Context, id model.TableID) (occupancy.TableState, error) {
	t, err := s.tables.Get(ctx, id)
	if err != nil {
		return occupancy.TableState{}, err
	}
	orders, err := s.orders.ListByTable(ctx, id)
	if err != nil {
		return occupancy.TableState{}, err
	}
	var done []model.DoneSignal
	switch d, err := s.done.Get(ctx, id); {
	case err == nil:
		done = append(done, d)
	case !errors.Is(err, model.ErrNotFound):
		return occupancy.TableState{}, err
	}
	return occupancy.Resolve([]model.Table{t}, orders, done)[0], nil
}

// ResolveQR verifies a QR token and returns the table it names.
func (s *Service) ResolveQR(ctx context.Context, token string) (model.Table, error) {
	raw, err := s.qr.Verify(token)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", model.ErrInvalid, err)
	}
	id, err := model.ParseTableID(raw)
	if err != nil {
		return model.Table{}, err
	}
	return s.tables.Get(ctx, id)
}

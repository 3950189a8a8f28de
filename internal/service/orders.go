package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/queue"
)

// LineRequest is one requested menu item in a new order.
type LineRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// SubmitOrder places an order for a table.  Requests naming the same item
// are merged by summing quantities.  Each line is a value copy of the menu
// item as it is now, so later menu edits never change what was ordered.
// Every line starts Preparing and the order starts Placed.
//
// Errors: ErrInvalid for an empty order or a quantity below one or, after
// merging, above model.MaxLineQuantity,
// ErrNotFound for an unknown table or menu item, ErrItemUnavailable for an
// item staff have switched off.
func (s *Service) SubmitOrder(ctx context.Context, tableID model.TableID, lines []LineRequest) (model.Order, error) {
	if len(lines) == 0 {
		return model.Order{}, fmt.Errorf("%w: order has no items", model.ErrInvalid)
	}
	merged := make([]LineRequest, 0, len(lines))
	index := map[string]int{}
	for _, l := range lines {
		if l.ItemID == "" {
			return model.Order{}, fmt.Errorf("%w: item id is required", model.ErrInvalid)
		}
		if l.Quantity < 1 {
			return model.Order{}, fmt.Errorf("%w: quantity for item %s must be at least 1", model.ErrInvalid, l.ItemID)
		}
		if l.Quantity > model.MaxLineQuantity {
			return model.Order{}, tooMany(l.ItemID)
		}
		if i, ok := index[l.ItemID]; ok {
			merged[i].Quantity += l.Quantity
			if merged[i].Quantity > model.MaxLineQuantity {
				return model.Order{}, tooMany(l.ItemID)
			}
			continue
		}
		index[l.ItemID] = len(merged)
		merged = append(merged, l)
	}

	if _, err := s.tables.Get(ctx, tableID); err != nil {
		return model.Order{}, err
	}

	order := model.Order{TableID: tableID, OrderStatus: model.OrderPlaced, Items: make([]model.OrderLineItem, 0, len(merged))}
	for _, l := range merged {
		m, err := s.menu.Get(ctx, l.ItemID)
		if err != nil {
			return model.Order{}, err
		}
		if !m.Available {
			return model.Order{}, fmt.Errorf("%w: %s", model.ErrItemUnavailable, m.Name)
		}
		if m.PriceCents < 0 || m.PriceCents > model.MaxPriceCents {
			return model.Order{}, fmt.Errorf("%w: menu item %s has price %d", model.ErrInvalid, m.ID, m.PriceCents)
		}
		order.Items = append(order.Items, model.OrderLineItem{
			ID:         m.ID,
			Name:       m.Name,
			PriceCents: m.PriceCents,
			Quantity:   l.Quantity,
			ItemStatus: model.ItemPreparing,
		})
	}

	id, err := s.newID()
	if err != nil {
		return model.Order{}, err
	}
	order.ID = id
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return model.Order{}, err
	}
	s.log.Info("order placed", "table", tableID, "order", created.ID, "items", len(created.Items))
	ev := queue.NewEvent(queue.OrderPlaced, tableID.String())
	ev.OrderID = created.ID
	ev.Items = len(created.Items)
	ev.TotalCents = created.TotalCents()
	s.publish(ev)
	return created, nil
}

func tooMany(itemID string) error {
	return fmt.Errorf("%w: quantity for item %s must not exceed %d", model.ErrInvalid, itemID, model.MaxLineQuantity)
}

// ListOrders returns all orders, or only those of tableID when it is set.
func (s *Service) ListOrders(ctx context.Context, tableID model.TableID) ([]model.Order, error) {
	if tableID == "" {
		return s.orders.List(ctx)
	}
	return s.orders.ListByTable(ctx, tableID)
}

// AdvanceItemStatus moves one line of an order to its next status and
// writes the whole order back.
func (s *Service) AdvanceItemStatus(ctx context.Context, orderID, itemID string) (model.Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if err := o.AdvanceItem(itemID); err != nil {
		return model.Order{}, err
	}
	return s.orders.Replace(ctx, o)
}

// AdvanceOrderStatus moves an order to its next status.  It is refused
// with ErrPreconditionFailed, and nothing is written, while any line is
// still being prepared.
func (s *Service) AdvanceOrderStatus(ctx context.Context, orderID string) (model.Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if err := o.Advance(); err != nil {
		return model.Order{}, err
	}
	return s.orders.Replace(ctx, o)
}

// SignalDone records that the customer at tableID asked for the check.
// It is idempotent: created is false when the signal already existed.
func (s *Service) SignalDone(ctx context.Context, tableID model.TableID) (created bool, err error) {
	if _, err := s.tables.Get(ctx, tableID); err != nil {
		return false, err
	}
	if _, err := s.done.Create(ctx, tableID); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	s.log.Info("table signalled done", "table", tableID)
	s.publish(queue.NewEvent(queue.TableDone, tableID.String()))
	return true, nil
}

// ListDoneSignals returns the tables currently waiting for their bill.
func (s *Service) ListDoneSignals(ctx context.Context) ([]model.DoneSignal, error) {
	return s.done.List(ctx)
}

package model

import "fmt"

// MaxLineQuantity caps the quantity of one order line, after duplicate
// lines of a submission are merged.
const MaxLineQuantity = 1000

// OrderLineItem is a value copy of a menu item taken when the order was
// submitted, plus the quantity and its preparation status.  ID is the id of
// the source MenuItem; it stays meaningful for bill aggregation even after
// the menu item is deleted.
type OrderLineItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PriceCents int64      `json:"price"`
	Quantity   int        `json:"quantity"`
	ItemStatus ItemStatus `json:"itemStatus"`
}

// LineTotal is price times quantity.
func (li OrderLineItem) LineTotal() int64 { return li.PriceCents * int64(li.Quantity) }

// Order is one customer submission for a table.  A table may hold several
// concurrent orders during a sitting.
type Order struct {
	ID          string          `json:"id"`
	TableID     TableID         `json:"tableId"`
	OrderStatus OrderStatus     `json:"orderStatus"`
	Items       []OrderLineItem `json:"items"`
}

// Item returns a pointer into o.Items for the line with the given id.
func (o *Order) Item(itemID string) (*OrderLineItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: item %s in order %s", ErrNotFound, itemID, o.ID)
}

// AllDelivered reports whether every line has been delivered.
func (o *Order) AllDelivered() bool {
	for _, it := range o.Items {
		if it.ItemStatus != ItemDelivered {
			return false
		}
	}
	return true
}

// AdvanceItem moves one line to the next status of the item ring.
func (o *Order) AdvanceItem(itemID string) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	it.ItemStatus = it.ItemStatus.Next()
	return nil
}

// Advance moves the order to the next status of the order ring.  This is
// the only gated transition in the system: it is refused with
// ErrPreconditionFailed, leaving the order untouched, unless every line is
// delivered.  Consoles poll independently, so a stale client may well ask
// for this while the kitchen view is out of date.
func (o *Order) Advance() error {
	if !o.AllDelivered() {
		return fmt.Errorf("%w: order %s has items still being prepared", ErrPreconditionFailed, o.ID)
	}
	o.OrderStatus = o.OrderStatus.Next()
	return nil
}

// TotalCents sums every line of the order.
func (o *Order) TotalCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}

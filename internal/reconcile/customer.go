package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/service"
)

// Customer-facing status messages.
const (
	MsgOrderProcessing = "Your order is being processed."
	MsgOrderCompleted  = "Your order is completed."
)

// OrderMessage describes the order status to the customer.
func OrderMessage(o model.Order) string {
	if o.OrderStatus == model.OrderDelivered {
		return MsgOrderCompleted
	}
	return MsgOrderProcessing
}

// ItemMessage describes one line's status to the customer.
func ItemMessage(it model.OrderLineItem) string {
	if it.ItemStatus == model.ItemDelivered {
		return fmt.Sprintf("%s has been delivered.", it.Name)
	}
	return fmt.Sprintf("%s is being prepared.", it.Name)
}

// ItemView is an order line with its message.
type ItemView struct {
	model.OrderLineItem
	Message string `json:"message"`
}

// OrderView is an order as the customer console shows it.
type OrderView struct {
	model.Order
	Message string     `json:"message"`
	Lines   []ItemView `json:"lines"`
}

func viewOf(o model.Order) OrderView {
	v := OrderView{Order: o, Message: OrderMessage(o), Lines: make([]ItemView, 0, len(o.Items))}
	for _, it := range o.Items {
		v.Lines = append(v.Lines, ItemView{OrderLineItem: it, Message: ItemMessage(it)})
	}
	return v
}

// MergeOrders reconciles the local order list with a fresh fetch.  Orders
// absent from the fetch (freed by staff) are dropped, orders already shown
// keep their position and take the fetched status, and orders new to this
// console are appended in fetch order.
func MergeOrders(local, fetched []model.Order) []model.Order {
	byID := make(map[string]model.Order, len(fetched))
	for _, o := range fetched {
		byID[o.ID] = o
	}
	out := make([]model.Order, 0, len(fetched))
	seen := make(map[string]bool, len(local))
	for _, o := range local {
		if f, ok := byID[o.ID]; ok && !seen[o.ID] {
			out = append(out, f)
			seen[o.ID] = true
		}
	}
	for _, o := range fetched {
		if !seen[o.ID] {
			out = append(out, o)
			seen[o.ID] = true
		}
	}
	return out
}

// CustomerConsole is the view of one table: its orders, its bill and the
// menu.
type CustomerConsole struct {
	api   CustomerAPI
	table model.TableID
	view  view
	loop  *Loop

	orders []model.Order
	bill   *model.Bill
	menu   []model.MenuItem
}

// NewCustomerConsole returns a console for table; call Start to begin
// polling.
func NewCustomerConsole(api CustomerAPI, table model.TableID, opts Options) *CustomerConsole {
	c := &CustomerConsole{api: api, table: table}
	c.view.onUpdate = opts.OnUpdate
	u := opts.unit()
	l := opts.Logger
	if l == nil {
		l = logger.Nop()
	}
	c.loop = NewLoop(l.With("table", table.String()),
		Task{Name: "customer-orders", Every: CustomerOrdersEvery * u, Run: c.RefreshOrders},
		Task{Name: "customer-bill", Every: CustomerBillEvery * u, Run: c.RefreshBill},
		Task{Name: "customer-menu", Every: CustomerMenuEvery * u, Run: c.RefreshMenu},
	)
	return c
}

func (c *CustomerConsole) Table() model.TableID { return c.table }

func (c *CustomerConsole) Start(ctx context.Context) { c.loop.Start(ctx) }

// Stop ends polling.  The console's snapshots are frozen afterwards.
func (c *CustomerConsole) Stop() {
	c.view.close()
	c.loop.Stop()
}

// RefreshOrders fetches the table's orders and merges them into the view.
func (c *CustomerConsole) RefreshOrders(ctx context.Context) error {
	fetched, err := c.api.ListOrders(ctx, c.table)
	if err != nil {
		return err
	}
	c.view.apply(UpdateOrders, func() { c.orders = MergeOrders(c.orders, fetched) })
	return nil
}

// RefreshBill checks whether staff have generated the bill.  A missing
// bill clears the local one, since freeing the table deletes it.
func (c *CustomerConsole) RefreshBill(ctx context.Context) error {
	b, err := c.api.GetBill(ctx, c.table)
	switch {
	case err == nil:
		c.view.apply(UpdateBill, func() { c.bill = &b })
	case errors.Is(err, model.ErrNotFound):
		c.view.apply(UpdateBill, func() { c.bill = nil })
	default:
		return err
	}
	return nil
}

// RefreshMenu replaces the menu snapshot.
func (c *CustomerConsole) RefreshMenu(ctx context.Context) error {
	menu, err := c.api.ListMenu(ctx, service.MenuFilter{})
	if err != nil {
		return err
	}
	c.view.apply(UpdateMenu, func() { c.menu = menu })
	return nil
}

// Orders returns the table's orders with their status messages.
func (c *CustomerConsole) Orders() []OrderView {
	c.view.mu.RLock()
	defer c.view.mu.RUnlock()
	out := make([]OrderView, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, viewOf(o))
	}
	return out
}

// Bill returns the current bill, if staff have generated one.
func (c *CustomerConsole) Bill() (model.Bill, bool) {
	c.view.mu.RLock()
	defer c.view.mu.RUnlock()
	if c.bill == nil {
		return model.Bill{}, false
	}
	return *c.bill, true
}

// Menu returns the menu items of the last snapshot matching f.
func (c *CustomerConsole) Menu(f service.MenuFilter) []model.MenuItem {
	c.view.mu.RLock()
	defer c.view.mu.RUnlock()
	out := make([]model.MenuItem, 0, len(c.menu))
	for _, m := range c.menu {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// SubmitOrder places an order and shows it immediately.
func (c *CustomerConsole) SubmitOrder(ctx context.Context, lines []service.LineRequest) (model.Order, error) {
	o, err := c.api.SubmitOrder(ctx, c.table, lines)
	if err != nil {
		return model.Order{}, err
	}
	c.view.apply(UpdateOrders, func() { c.orders = MergeOrders(c.orders, append(append([]model.Order(nil), c.orders...), o)) })
	return o, nil
}

// SignalDone asks staff for the check.
func (c *CustomerConsole) SignalDone(ctx context.Context) (bool, error) {
	return c.api.SignalDone(ctx, c.table)
}

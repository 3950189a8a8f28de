package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/occupancy"
	"github.com/iliyamo/menuq/internal/service"
)

// Options tune a console.
type Options struct {
	// Unit is the base tick; task intervals are multiples of it.
	Unit     time.Duration
	Logger   *slog.Logger
	OnUpdate func(Update)
}

func (o Options) unit() time.Duration {
	if o.Unit <= 0 {
		return time.Second
	}
	return o.Unit
}

// StaffConsole is the staff side: it polls all orders, the done signals
// and the tables, and derives the table board from them.
type StaffConsole struct {
	api  StaffAPI
	view view
	loop *Loop

	tables []model.Table
	orders []model.Order
	done   []model.DoneSignal
}

// NewStaffConsole returns a console; call Start to begin polling.
func NewStaffConsole(api StaffAPI, opts Options) *StaffConsole {
	c := &StaffConsole{api: api}
	c.view.onUpdate = opts.OnUpdate
	u := opts.unit()
	c.loop = NewLoop(opts.Logger,
		Task{Name: "staff-orders", Every: StaffOrdersEvery * u, Run: c.RefreshOrders},
		Task{Name: "staff-done", Every: StaffDoneEvery * u, Run: c.RefreshDone},
		Task{Name: "staff-tables", Every: StaffTablesEvery * u, Run: c.RefreshTables},
	)
	return c
}

// Start begins polling.
func (c *StaffConsole) Start(ctx context.Context) { c.loop.Start(ctx) }

// Stop ends polling.  The console's snapshots are frozen afterwards.
func (c *StaffConsole) Stop() {
	c.view.close()
	c.loop.Stop()
}

// RefreshOrders replaces the orders snapshot.
func (c *StaffConsole) RefreshOrders(ctx context.Context) error {
	orders, err := c.api.ListOrders(ctx, "")
	if err != nil {
		return err
	}
	c.view.apply(UpdateOrders, func() { c.orders = orders })
	return nil
}

// RefreshDone replaces the done-signal snapshot.
func (c *StaffConsole) RefreshDone(ctx context.Context) error {
	done, err := c.api.ListDoneSignals(ctx)
	if err != nil {
		return err
	}
	c.view.apply(UpdateDone, func() { c.done = done })
	return nil
}

// RefreshTables replaces the tables snapshot.
func (c *StaffConsole) RefreshTables(ctx context.Context) error {
	tables, err := c.api.ListTables(ctx)
	if err != nil {
		return err
	}
	c.view.apply(UpdateTables, func() { c.tables = tables })
	return nil
}

// Board classifies every table from the current snapshots.
func (c *StaffConsole) Board() []occupancy.TableState {
	c.view.mu.RLock()
	defer c.view.mu.RUnlock()
	return occupancy.Resolve(c.tables, c.orders, c.done)
}

// Orders returns a copy of the orders snapshot.
func (c *StaffConsole) Orders() []model.Order {
	c.view.mu.RLock()
	defer c.view.mu.RUnlock()
	return append([]model.Order(nil), c.orders...)
}

// The actions below write through the API and then refresh the snapshot
// they touched so the console reflects its own write without waiting for
// the next tick.  A failed refresh is not an error of the action.

func (c *StaffConsole) AdvanceItemStatus(ctx context.Context, orderID, itemID string) (model.Order, error) {
	o, err := c.api.AdvanceItemStatus(ctx, orderID, itemID)
	if err != nil {
		return model.Order{}, err
	}
	_ = c.RefreshOrders(ctx)
	return o, nil
}

func (c *StaffConsole) AdvanceOrderStatus(ctx context.Context, orderID string) (model.Order, error) {
	o, err := c.api.AdvanceOrderStatus(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	_ = c.RefreshOrders(ctx)
	return o, nil
}

// FreeTable clears the table, then refreshes orders and done signals.
func (c *StaffConsole) FreeTable(ctx context.Context, id model.TableID) service.FreeTableResult {
	res := c.api.FreeTable(ctx, id)
	_ = c.RefreshOrders(ctx)
	_ = c.RefreshDone(ctx)
	return res
}

func (c *StaffConsole) GenerateBill(ctx context.Context, id model.TableID) (model.Bill, error) {
	return c.api.GenerateBill(ctx, id)
}

func (c *StaffConsole) AddTable(ctx context.Context) (model.Table, error) {
	t, err := c.api.AddTable(ctx)
	if err != nil {
		return model.Table{}, err
	}
	_ = c.RefreshTables(ctx)
	return t, nil
}

func (c *StaffConsole) RemoveTable(ctx context.Context, id model.TableID) error {
	if err := c.api.RemoveTable(ctx, id); err != nil {
		return err
	}
	_ = c.RefreshTables(ctx)
	return nil
}

func (c *StaffConsole) ToggleItemAvailability(ctx context.Context, id string) (model.MenuItem, error) {
	return c.api.ToggleItemAvailability(ctx, id)
}

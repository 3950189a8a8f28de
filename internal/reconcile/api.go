package reconcile

import (
	"context"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/service"
)

// StaffAPI is what the staff console calls.  *service.Service implements it.
type StaffAPI interface {
	ListTables(ctx context.Context) ([]model.Table, error)
	ListOrders(ctx context.Context, tableID model.TableID) ([]model.Order, error)
	ListDoneSignals(ctx context.Context) ([]model.DoneSignal, error)
	AddTable(ctx context.Context) (model.Table, error)
	RemoveTable(ctx context.Context, id model.TableID) error
	FreeTable(ctx context.Context, id model.TableID) service.FreeTableResult
	AdvanceItemStatus(ctx context.Context, orderID, itemID string) (model.Order, error)
	AdvanceOrderStatus(ctx context.Context, orderID string) (model.Order, error)
	GenerateBill(ctx context.Context, tableID model.TableID) (model.Bill, error)
	ToggleItemAvailability(ctx context.Context, id string) (model.MenuItem, error)
}

// CustomerAPI is what a customer console calls.  *service.Service
// implements it.
type CustomerAPI interface {
	ListOrders(ctx context.Context, tableID model.TableID) ([]model.Order, error)
	GetBill(ctx context.Context, tableID model.TableID) (model.Bill, error)
	ListMenu(ctx context.Context, f service.MenuFilter) ([]model.MenuItem, error)
	SubmitOrder(ctx context.Context, tableID model.TableID, lines []service.LineRequest) (model.Order, error)
	SignalDone(ctx context.Context, tableID model.TableID) (bool, error)
}

var (
	_ StaffAPI    = (*service.Service)(nil)
	_ CustomerAPI = (*service.Service)(nil)
)

// Update names the snapshot that changed, for Options.OnUpdate.
type Update string

const (
	UpdateTables Update = "tables"
	UpdateOrders Update = "orders"
	UpdateDone   Update = "done"
	UpdateBill   Update = "bill"
	UpdateMenu   Update = "menu"
)

// Intervals of the periodic tasks, in multiples of the tick unit.
const (
	StaffOrdersEvery    = 3
	StaffDoneEvery      = 4
	StaffTablesEvery    = 6
	CustomerOrdersEvery = 5
	CustomerBillEvery   = 4
	CustomerMenuEvery   = 10
)

package model

import "errors"

// Sentinel errors shared by every layer.  Stores, repositories and the
// service wrap these with fmt.Errorf("...: %w", err) so that handlers and
// consoles can classify a failure with errors.Is regardless of where it was
// raised.
var (
	// ErrNotFound is returned when a referenced table, order, line item,
	// menu item, bill or done signal does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed is returned when an order status advance is
	// attempted while at least one of its items is not yet delivered.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrNoOrdersForTable is returned when a bill is requested for a table
	// that has nothing to bill.  It is an expected outcome, not a fault.
	ErrNoOrdersForTable = errors.New("no orders for table")

	// ErrStoreUnavailable marks transport or driver failures talking to the
	// resource store.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrConflict is returned by Create when a record with the same id
	// already exists in the collection.
	ErrConflict = errors.New("conflict")

	// ErrInvalid marks malformed input (bad ids, empty orders, negative
	// prices, unknown enum values).
	ErrInvalid = errors.New("invalid input")

	// ErrItemUnavailable is returned when an order references a menu item
	// that staff have switched off.
	ErrItemUnavailable = errors.New("menu item unavailable")
)

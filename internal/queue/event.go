// Package queue carries table lifecycle events over RabbitMQ.  The events
// are an audit trail only: nothing in the reconciliation protocol reads
// them back, so a broker outage never affects what either console sees.
package queue

import "time"

// EventType names a table lifecycle transition.
type EventType string

const (
	TableAdded    EventType = "table.added"
	TableRemoved  EventType = "table.removed"
	OrderPlaced   EventType = "order.placed"
	TableDone     EventType = "table.done"
	BillGenerated EventType = "bill.generated"
	TableFreed    EventType = "table.freed"
)

// TableEvent is published after a successful write.  It contains enough
// information for the audit log without querying the store.
type TableEvent struct {
	Type       EventType `json:"type"`
	TableID    string    `json:"table_id"`
	OrderID    string    `json:"order_id,omitempty"`
	BillID     string    `json:"bill_id,omitempty"`
	TotalCents int64     `json:"total_cents,omitempty"`
	Items      int       `json:"items,omitempty"`
	Partial    bool      `json:"partial,omitempty"`
	OccurredAt string    `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(t EventType, tableID string) TableEvent {
	return TableEvent{Type: t, TableID: tableID, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
}

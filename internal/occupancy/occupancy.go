// Package occupancy derives each table's booked / ready-for-bill state from
// snapshots of the orders and done-signal collections.  Nothing here is
// ever stored: the classification is recomputed in full on every refresh,
// so an order deleted by a concurrent FreeTable drops out on the next tick
// without any removal bookkeeping.
package occupancy

import "github.com/iliyamo/menuq/internal/model"

// Occupancy classifies a table.
type Occupancy string

const (
	// Free: no order references the table.
	Free Occupancy = "free"
	// Booked: at least one order references the table.
	Booked Occupancy = "booked"
	// BookedReady: booked, and the customer has signalled done.
	BookedReady Occupancy = "ready-for-bill"
)

// TableState pairs a table with its derived occupancy.
type TableState struct {
	model.Table
	Occupancy Occupancy `json:"occupancy"`
}

// IsBooked reports whether the table has any order.
func (s TableState) IsBooked() bool { return s.Occupancy != Free }

// IsReadyForBill reports whether the table is booked and signalled done.
func (s TableState) IsReadyForBill() bool { return s.Occupancy == BookedReady }

// Resolve classifies every table in tables, preserving their order.  A
// done signal for a table with no orders does not make it ready: the
// signal only counts while the table is booked.
func Resolve(tables []model.Table, orders []model.Order, done []model.DoneSignal) []TableState {
	booked := make(map[model.TableID]struct{}, len(orders))
	for _, o := range orders {
		booked[o.TableID] = struct{}{}
	}
	signalled := make(map[model.TableID]struct{}, len(done))
	for _, d := range done {
		signalled[d.ID] = struct{}{}
	}
	out := make([]TableState, 0, len(tables))
	for _, t := range tables {
		out = append(out, TableState{Table: t, Occupancy: classify(t.ID, booked, signalled)})
	}
	return out
}

// Of classifies a single table id.
func Of(id model.TableID, orders []model.Order, done []model.DoneSignal) Occupancy {
	states := Resolve([]model.Table{{ID: id}}, orders, done)
	return states[0].Occupancy
}

func classify(id model.TableID, booked, signalled map[model.TableID]struct{}) Occupancy {
	if _, ok := booked[id]; !ok {
		return Free
	}
	if _, ok := signalled[id]; ok {
		return BookedReady
	}
	return Booked
}

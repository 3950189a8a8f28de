package occupancy

import (
	"testing"

	"github.com/iliyamo/menuq/internal/model"
)

func TestResolve(t *testing.T) {
	tables := []model.Table{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	orders := []model.Order{
		{ID: "a", TableID: "2"},
		{ID: "b", TableID: "3"},
		{ID: "c", TableID: "3"},
		{ID: "d", TableID: "9"}, // orphan order for a removed table
	}
	done := []model.DoneSignal{{ID: "3"}, {ID: "4"}}

	got := Resolve(tables, orders, done)
	want := []Occupancy{Free, Booked, BookedReady, Free}
	if len(got) != len(want) {
		t.Fatalf("got %d states, want %d", len(got), len(want))
	}
	for i, st := range got {
		if st.ID != tables[i].ID {
			t.Errorf("state %d: table %s, want %s", i, st.ID, tables[i].ID)
		}
		if st.Occupancy != want[i] {
			t.Errorf("table %s: got %s, want %s", st.ID, st.Occupancy, want[i])
		}
	}
}

func TestReadyRequiresBooked(t *testing.T) {
	tests := []struct {
		name   string
		orders []model.Order
		done   []model.DoneSignal
		booked bool
		ready  bool
	}{
		{"no orders no signal", nil, nil, false, false},
		{"signal without orders", nil, []model.DoneSignal{{ID: "5"}}, false, false},
		{"orders without signal", []model.Order{{TableID: "5"}}, nil, true, false},
		{"orders and signal", []model.Order{{TableID: "5"}}, []model.DoneSignal{{ID: "5"}}, true, true},
		{"signal for other table", []model.Order{{TableID: "5"}}, []model.DoneSignal{{ID: "6"}}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Resolve([]model.Table{{ID: "5"}}, tt.orders, tt.done)[0]
			if st.IsBooked() != tt.booked {
				t.Errorf("IsBooked = %v, want %v", st.IsBooked(), tt.booked)
			}
			if st.IsReadyForBill() != tt.ready {
				t.Errorf("IsReadyForBill = %v, want %v", st.IsReadyForBill(), tt.ready)
			}
		})
	}
}

func TestRecomputedAfterDeletion(t *testing.T) {
	orders := []model.Order{{ID: "a", TableID: "1"}}
	if Of("1", orders, nil) != Booked {
		t.Fatal("expected booked")
	}
	if Of("1", orders[:0], nil) != Free {
		t.Fatal("expected free once the order disappears from the snapshot")
	}
}

package billing

import (
	"errors"
	"math"
	"testing"

	"github.com/iliyamo/menuq/internal/model"
)

func line(id, name string, price int64, qty int) model.OrderLineItem {
	return model.OrderLineItem{ID: id, Name: name, PriceCents: price, Quantity: qty, ItemStatus: model.ItemDelivered}
}

func TestAggregateFoldsByItemID(t *testing.T) {
	orders := []model.Order{
		{ID: "o1", TableID: "3", Items: []model.OrderLineItem{line("1", "Tea", 10, 2)}},
		{ID: "o2", TableID: "3", Items: []model.OrderLineItem{line("1", "Tea", 10, 1)}},
		{ID: "o3", TableID: "4", Items: []model.OrderLineItem{line("1", "Tea", 10, 7)}},
	}
	bill, err := Aggregate("3", orders)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(bill.Items) != 1 {
		t.Fatalf("got %d lines, want 1", len(bill.Items))
	}
	got := bill.Items[0]
	if got.Name != "Tea" || got.Quantity != 3 || got.TotalCents != 30 {
		t.Errorf("line = %+v, want Tea x3 = 30", got)
	}
	if bill.TotalCents != 30 || bill.TableID != "3" {
		t.Errorf("bill = %+v", bill)
	}
}

func TestAggregateUsesPerLinePrice(t *testing.T) {
	// A menu price change between two orders keeps each order's own price.
	orders := []model.Order{
		{TableID: "1", Items: []model.OrderLineItem{line("1", "Tea", 10, 1)}},
		{TableID: "1", Items: []model.OrderLineItem{line("1", "Tea", 15, 2)}},
	}
	bill, err := Aggregate("1", orders)
	if err != nil {
		t.Fatal(err)
	}
	if bill.Items[0].PriceCents != 10 || bill.Items[0].TotalCents != 40 || bill.TotalCents != 40 {
		t.Errorf("bill = %+v", bill)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	orders := []model.Order{
		{TableID: "2", Items: []model.OrderLineItem{line("9", "Soup", 50, 1), line("10", "Naan", 5, 4)}},
		{TableID: "2", Items: []model.OrderLineItem{line("2", "Tea", 10, 1)}},
	}
	first, err := Aggregate("2", orders)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := Aggregate("2", orders)
		for j := range first.Items {
			if again.Items[j] != first.Items[j] {
				t.Fatalf("run %d line %d differs: %+v vs %+v", i, j, again.Items[j], first.Items[j])
			}
		}
	}
	ids := []string{first.Items[0].ItemID, first.Items[1].ItemID, first.Items[2].ItemID}
	if ids[0] != "10" || ids[1] != "2" || ids[2] != "9" {
		t.Errorf("lines not sorted by item id: %v", ids)
	}
	if first.TotalCents != 80 {
		t.Errorf("total = %d, want 80", first.TotalCents)
	}
}

func TestAggregateNoOrders(t *testing.T) {
	orders := []model.Order{{TableID: "1", Items: []model.OrderLineItem{line("1", "Tea", 10, 1)}}}
	if _, err := Aggregate("2", orders); !errors.Is(err, model.ErrNoOrdersForTable) {
		t.Fatalf("got %v, want ErrNoOrdersForTable", err)
	}
	if _, err := Aggregate("2", nil); !errors.Is(err, model.ErrNoOrdersForTable) {
		t.Fatalf("got %v, want ErrNoOrdersForTable", err)
	}
}

func TestAggregateRejectsOverflow(t *testing.T) {
	tests := []struct {
		name  string
		items []model.OrderLineItem
	}{
		{"negative quantity", []model.OrderLineItem{line("1", "Tea", 10, -2)}},
		{"line product", []model.OrderLineItem{line("1", "Tea", math.MaxInt64/2, 3)}},
		{"sum of lines", []model.OrderLineItem{line("1", "Tea", math.MaxInt64/2, 1), line("2", "Soup", math.MaxInt64/2, 1), line("3", "Cake", 2, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill, err := Aggregate("1", []model.Order{{ID: "o1", TableID: "1", Items: tt.items}})
			if !errors.Is(err, model.ErrInvalid) {
				t.Fatalf("got %+v, %v; want ErrInvalid", bill, err)
			}
		})
	}
}

package model

import (
	"errors"
	"testing"
)

func TestItemStatusNext(t *testing.T) {
	tests := []struct {
		in   ItemStatus
		want ItemStatus
	}{
		{ItemPreparing, ItemDelivered},
		{ItemDelivered, ItemPreparing},
		{"", ItemPreparing},
		{"Cooking", ItemPreparing},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrderStatusNext(t *testing.T) {
	if got := OrderPlaced.Next(); got != OrderDelivered {
		t.Errorf("Placed.Next() = %q", got)
	}
	if got := OrderDelivered.Next(); got != OrderPlaced {
		t.Errorf("Delivered.Next() = %q", got)
	}
}

func newOrder() *Order {
	return &Order{
		ID:          "o1",
		TableID:     "5",
		OrderStatus: OrderPlaced,
		Items: []OrderLineItem{
			{ID: "7", Name: "Soup", PriceCents: 5000, Quantity: 1, ItemStatus: ItemPreparing},
			{ID: "8", Name: "Tea", PriceCents: 1000, Quantity: 2, ItemStatus: ItemPreparing},
		},
	}
}

func TestAdvanceItemTwiceRoundTrips(t *testing.T) {
	o := newOrder()
	if err := o.AdvanceItem("7"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if o.Items[0].ItemStatus != ItemDelivered {
		t.Fatalf("expected Delivered, got %q", o.Items[0].ItemStatus)
	}
	if err := o.AdvanceItem("7"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if o.Items[0].ItemStatus != ItemPreparing {
		t.Fatalf("expected Preparing after two advances, got %q", o.Items[0].ItemStatus)
	}
	if o.Items[1].ItemStatus != ItemPreparing {
		t.Fatalf("other item changed: %q", o.Items[1].ItemStatus)
	}
}

func TestAdvanceItemUnknown(t *testing.T) {
	o := newOrder()
	if err := o.AdvanceItem("99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdvanceOrderGate(t *testing.T) {
	o := newOrder()
	_ = o.AdvanceItem("7")
	if err := o.Advance(); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if o.OrderStatus != OrderPlaced {
		t.Fatalf("status changed on refused advance: %q", o.OrderStatus)
	}
	_ = o.AdvanceItem("8")
	if err := o.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if o.OrderStatus != OrderDelivered {
		t.Fatalf("expected Delivered, got %q", o.OrderStatus)
	}
	// the gate holds on the way back too
	_ = o.AdvanceItem("8")
	if err := o.Advance(); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if o.OrderStatus != OrderDelivered {
		t.Fatalf("status changed on refused advance: %q", o.OrderStatus)
	}
}

func TestOrderTotal(t *testing.T) {
	if got := newOrder().TotalCents(); got != 7000 {
		t.Fatalf("TotalCents() = %d, want 7000", got)
	}
}

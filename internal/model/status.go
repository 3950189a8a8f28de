package model

// ItemStatus is the preparation state of one order line.
type ItemStatus string

const (
	ItemPreparing ItemStatus = "Preparing"
	ItemDelivered ItemStatus = "Delivered"
)

// OrderStatus is the state of a whole order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "Placed"
	OrderDelivered OrderStatus = "Delivered"
)

// Both lifecycles are two-state rings.  Advancing past the last state wraps
// to the first, which lets staff undo an accidental tap with a second tap.
var (
	itemCycle  = []ItemStatus{ItemPreparing, ItemDelivered}
	orderCycle = []OrderStatus{OrderPlaced, OrderDelivered}
)

// Next returns the status following s in the item ring.  A value outside
// the ring moves to the ring's first state.
func (s ItemStatus) Next() ItemStatus {
	return itemCycle[(indexOf(itemCycle, s)+1)%len(itemCycle)]
}

// Next returns the status following s in the order ring.
func (s OrderStatus) Next() OrderStatus {
	return orderCycle[(indexOf(orderCycle, s)+1)%len(orderCycle)]
}

func indexOf[T comparable](cycle []T, v T) int {
	for i, c := range cycle {
		if c == v {
			return i
		}
	}
	return -1
}

package model

// BillLine is one consolidated row of a bill: every line item with the same
// menu item id across all of a table's orders folds into a single BillLine.
// price and totalPrice are minor units, like MenuItem.PriceCents.
type BillLine struct {
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"totalPrice"`
}

// Bill is the consolidated check for a whole sitting.  At most one bill
// exists per table; regenerating replaces it.  total is in minor units.
type Bill struct {
	ID         string     `json:"id"`
	TableID    TableID    `json:"tableId"`
	Items      []BillLine `json:"items"`
	TotalCents int64      `json:"total"`
}

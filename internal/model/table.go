package model

// Table is a physical seating unit.  It deliberately carries no occupancy
// field: whether a table is booked or waiting for its bill is always derived
// from the current orders and done signals (see package occupancy).
//
// Fields:
//  ID       – canonical table id, assigned monotonically by the staff console.
//  QRTarget – the URL encoded into the table's QR code; the customer console
//             opens it to reach the table page.
type Table struct {
	ID       TableID `json:"id"`
	QRTarget string  `json:"qrTarget"`
}

// TableIDClaim records that an id has been assigned to a table.
type TableIDClaim struct {
	ID TableID `json:"id"`
}

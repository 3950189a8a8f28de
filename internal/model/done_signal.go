package model

// DoneSignal is a presence-only marker meaning "the customer at this table
// asked for the check".  Its id is the table id, which makes the collection
// behave as a set: a second signal for the same table collides on create.
type DoneSignal struct {
	ID TableID `json:"id"`
}

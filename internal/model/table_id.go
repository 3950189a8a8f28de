package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TableID is the canonical identifier of a table: a positive decimal
// integer carried as a string ("5").  Clients have historically sent table
// ids both as JSON strings and as JSON numbers; every boundary normalises to
// this one form so that comparisons between orders, done signals and bills
// never depend on how a given client encoded the id.
type TableID string

// ParseTableID normalises raw into a TableID.  Surrounding whitespace and
// leading zeros are dropped; anything that is not a positive integer is
// rejected with ErrInvalid.
func ParseTableID(raw string) (TableID, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return "", fmt.Errorf("%w: table id %q", ErrInvalid, raw)
	}
	return TableID(strconv.FormatUint(n, 10)), nil
}

// TableIDFromInt renders n as a TableID.
func TableIDFromInt(n uint64) TableID { return TableID(strconv.FormatUint(n, 10)) }

// Uint returns the numeric value of id, or 0 when id is not canonical.
func (id TableID) Uint() uint64 {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (id TableID) String() string { return string(id) }

// UnmarshalJSON accepts both "5" and 5.
func (id *TableID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		raw = string(b)
	}
	parsed, err := ParseTableID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTableID(t *testing.T) {
	tests := []struct {
		in      string
		want    TableID
		wantErr bool
	}{
		{"5", "5", false},
		{" 12 ", "12", false},
		{"007", "7", false},
		{"0", "", true},
		{"-3", "", true},
		{"abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTableID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("ParseTableID(%q) err = %v, want ErrInvalid", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTableID(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestTableIDJSONAcceptsNumbersAndStrings(t *testing.T) {
	var a, b DoneSignal
	if err := json.Unmarshal([]byte(`{"id":5}`), &a); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":"5"}`), &b); err != nil {
		t.Fatalf("string: %v", err)
	}
	if a.ID != b.ID || a.ID != "5" {
		t.Fatalf("ids differ: %q vs %q", a.ID, b.ID)
	}
	out, _ := json.Marshal(a)
	if string(out) != `{"id":"5"}` {
		t.Fatalf("marshal = %s", out)
	}
	var bad DoneSignal
	if err := json.Unmarshal([]byte(`{"id":"x"}`), &bad); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

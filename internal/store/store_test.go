package store

import (
	"encoding/json"
	"testing"
)

func TestPatchBodyDropsIDWithoutTouchingFields(t *testing.T) {
	fields := map[string]any{"id": "x", "available": false}
	body, err := PatchBody(MenuItems, fields)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["id"]; ok || got["available"] != false || len(got) != 1 {
		t.Fatalf("patch = %s", body)
	}
	if fields["id"] != "x" || len(fields) != 2 {
		t.Fatalf("caller's map changed: %v", fields)
	}
}

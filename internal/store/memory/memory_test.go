package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

func mustCreate(t *testing.T, s *Store, c store.Collection, id string, v any) {
	t.Helper()
	rec, err := store.Encode(id, v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := s.Create(context.Background(), c, rec); err != nil {
		t.Fatalf("create %s: %v", id, err)
	}
}

func TestCreateGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	mustCreate(t, s, store.Tables, "1", map[string]any{"qrTarget": "x"})

	rec, err := s.Get(ctx, store.Tables, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["id"] != "1" || doc["qrTarget"] != "x" {
		t.Fatalf("unexpected body %s", rec.Body)
	}

	rec2, _ := store.Encode("1", map[string]any{})
	if _, err := s.Create(ctx, store.Tables, rec2); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate create: got %v, want ErrConflict", err)
	}

	if err := s.Delete(ctx, store.Tables, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, store.Tables, "1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, store.Tables, "1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("get after delete: got %v", err)
	}
}

func TestListFilterAndOrder(t *testing.T) {
	s := New()
	mustCreate(t, s, store.Orders, "a", map[string]any{"tableId": "5"})
	mustCreate(t, s, store.Orders, "b", map[string]any{"tableId": 3})
	mustCreate(t, s, store.Orders, "c", map[string]any{"tableId": 5})

	all, err := s.List(context.Background(), store.Orders, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("list order: %+v", all)
	}

	five, err := s.List(context.Background(), store.Orders, store.Where("tableId", "5"))
	if err != nil {
		t.Fatal(err)
	}
	if len(five) != 2 || five[0].ID != "a" || five[1].ID != "c" {
		t.Fatalf("filter matched %d records", len(five))
	}

	empty, err := s.List(context.Background(), store.Bills, nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty collection: %v %v", empty, err)
	}
}

func TestReplaceAndPatch(t *testing.T) {
	s := New()
	ctx := context.Background()
	mustCreate(t, s, store.MenuItems, "m1", map[string]any{"name": "Tea", "available": true})

	if _, err := s.Patch(ctx, store.MenuItems, "m1", map[string]any{"available": false, "id": "other"}); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.Get(ctx, store.MenuItems, "m1")
	var doc map[string]any
	_ = json.Unmarshal(rec.Body, &doc)
	if doc["available"] != false || doc["name"] != "Tea" || doc["id"] != "m1" {
		t.Fatalf("patch result %s", rec.Body)
	}

	if _, err := s.Replace(ctx, store.MenuItems, "m1", json.RawMessage(`{"name":"Coffee"}`)); err != nil {
		t.Fatal(err)
	}
	rec, _ = s.Get(ctx, store.MenuItems, "m1")
	doc = nil
	_ = json.Unmarshal(rec.Body, &doc)
	if doc["name"] != "Coffee" || doc["id"] != "m1" || doc["available"] != nil {
		t.Fatalf("replace result %s", rec.Body)
	}

	if _, err := s.Replace(ctx, store.MenuItems, "nope", json.RawMessage(`{}`)); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("replace missing: %v", err)
	}
	if _, err := s.Patch(ctx, store.MenuItems, "nope", nil); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("patch missing: %v", err)
	}
}

func TestReturnedBodiesAreCopies(t *testing.T) {
	s := New()
	mustCreate(t, s, store.Tables, "1", map[string]any{"qrTarget": "x"})
	rec, _ := s.Get(context.Background(), store.Tables, "1")
	for i := range rec.Body {
		rec.Body[i] = ' '
	}
	again, _ := s.Get(context.Background(), store.Tables, "1")
	if !json.Valid(again.Body) {
		t.Fatal("stored body was mutated through a returned slice")
	}
}

func TestCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.List(ctx, store.Tables, nil); !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("got %v, want ErrStoreUnavailable", err)
	}
}

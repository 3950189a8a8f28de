// Package storetest provides helpers for exercising code that talks to a
// store.Store under failure.
package storetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iliyamo/menuq/internal/store"
)

// Op names a store operation for fault injection.
type Op string

const (
	OpList    Op = "list"
	OpGet     Op = "get"
	OpCreate  Op = "create"
	OpReplace Op = "replace"
	OpPatch   Op = "patch"
	OpDelete  Op = "delete"
)

// Call records one operation seen by a Faulty store.
type Call struct {
	Op         Op
	Collection store.Collection
	ID         string
}

// Faulty wraps a Store and consults Fail before every operation.  A
// non-nil error from Fail is returned instead of calling the inner store.
type Faulty struct {
	Inner store.Store
	Fail  func(op Op, c store.Collection, id string) error

	mu    sync.Mutex
	calls []Call
}

// Wrap returns a Faulty that never fails until Fail is set.
func Wrap(inner store.Store) *Faulty { return &Faulty{Inner: inner} }

// Calls returns a copy of the operations seen so far.
func (f *Faulty) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times op was called on collection c.
func (f *Faulty) Count(op Op, c store.Collection) int {
	n := 0
	for _, call := range f.Calls() {
		if call.Op == op && call.Collection == c {
			n++
		}
	}
	return n
}

func (f *Faulty) check(op Op, c store.Collection, id string) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: op, Collection: c, ID: id})
	fail := f.Fail
	f.mu.Unlock()
	if fail == nil {
		return nil
	}
	return fail(op, c, id)
}

func (f *Faulty) List(ctx context.Context, c store.Collection, flt *store.Filter) ([]store.Record, error) {
	if err := f.check(OpList, c, ""); err != nil {
		return nil, err
	}
	return f.Inner.List(ctx, c, flt)
}

func (f *Faulty) Get(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	if err := f.check(OpGet, c, id); err != nil {
		return store.Record{}, err
	}
	return f.Inner.Get(ctx, c, id)
}

func (f *Faulty) Create(ctx context.Context, c store.Collection, rec store.Record) (store.Record, error) {
	if err := f.check(OpCreate, c, rec.ID); err != nil {
		return store.Record{}, err
	}
	return f.Inner.Create(ctx, c, rec)
}

func (f *Faulty) Replace(ctx context.Context, c store.Collection, id string, body json.RawMessage) (store.Record, error) {
	if err := f.check(OpReplace, c, id); err != nil {
		return store.Record{}, err
	}
	return f.Inner.Replace(ctx, c, id, body)
}

func (f *Faulty) Patch(ctx context.Context, c store.Collection, id string, fields map[string]any) (store.Record, error) {
	if err := f.check(OpPatch, c, id); err != nil {
		return store.Record{}, err
	}
	return f.Inner.Patch(ctx, c, id, fields)
}

func (f *Faulty) Delete(ctx context.Context, c store.Collection, id string) error {
	if err := f.check(OpDelete, c, id); err != nil {
		return err
	}
	return f.Inner.Delete(ctx, c, id)
}

func (f *Faulty) Close() error { return f.Inner.Close() }

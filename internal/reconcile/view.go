package reconcile

import "sync"

// view holds a console's snapshots.  Writes go through apply, which drops
// them once the console is closed: a fetch that was in flight when the
// console stopped completes normally but its result is discarded.
type view struct {
	mu       sync.RWMutex
	closed   bool
	onUpdate func(Update)
}

func (v *view) apply(u Update, fn func()) bool {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return false
	}
	fn()
	v.mu.Unlock()
	if v.onUpdate != nil {
		v.onUpdate(u)
	}
	return true
}

func (v *view) close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

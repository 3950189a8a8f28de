// Package reconcile keeps a console's local view of the shared store
// eventually consistent by polling.  Each refresh is an independent
// periodic task; the console derives everything it shows (occupancy,
// status messages) from the latest snapshots instead of patching state
// incrementally.
package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iliyamo/menuq/internal/logger"
)

// Task is one periodic refresh.  Run must write only the state it owns.
type Task struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Loop runs each task on its own goroutine: once at start, then on every
// tick of its ticker.  A task runs to completion before its next firing,
// so it never overlaps itself; different tasks may run concurrently.  A
// failing task is logged and the caller's previous snapshot stays in place.
type Loop struct {
	log   *slog.Logger
	tasks []Task

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoop returns a stopped loop.
func NewLoop(l *slog.Logger, tasks ...Task) *Loop {
	return &Loop{log: logger.Component(l, "reconcile"), tasks: tasks}
}

// Start launches every task.  Calling Start on a running loop does nothing.
func (l *Loop) Start(parent context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	for _, t := range l.tasks {
		l.wg.Add(1)
		go l.run(ctx, t)
	}
}

// Stop cancels every task and waits for in-flight runs to return.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	l.wg.Wait()
}

func (l *Loop) run(ctx context.Context, t Task) {
	defer l.wg.Done()
	l.tick(ctx, t)
	ticker := time.NewTicker(t.Every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick(ctx, t)
		}
	}
}

func (l *Loop) tick(ctx context.Context, t Task) {
	if ctx.Err() != nil {
		return
	}
	if err := t.Run(ctx); err != nil && ctx.Err() == nil {
		l.log.Warn("refresh failed, keeping previous snapshot", "task", t.Name, "error", err)
	}
}

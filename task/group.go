// Package task provides a small goroutine-group helper: a set of named
// goroutines sharing a cancellable context, where the first non-nil error
// cancels the rest and is returned from Wait. It is reused by every
// composite (proxy shovel loops, authentication service loops, directory
// sweepers).
package task

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Group runs a set of goroutines under a shared, cancellable Context.
// Queue as many functions as needed, then Wait for all of them to return.
// The first non-nil error cancels the Group's Context so sibling tasks
// observing ctx.Done() can unwind promptly.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	wg      sync.WaitGroup
	err     error
	started bool
}

// NewGroup returns a Group deriving its Context from parent.
func NewGroup(parent context.Context) *Group {
	var ctx, cancel = context.WithCancel(parent)
	return &Group{ctx: ctx, cancel: cancel}
}

// Context returns the Group's Context, cancelled on the first task error
// or when Cancel is called.
func (g *Group) Context() context.Context { return g.ctx }

// Queue starts fn in its own goroutine under this Group. name (e.g.
// "service.Watch") prefixes fn's error when that error is the one
// recorded and returned by Wait.
func (g *Group) Queue(name string, fn func() error) {
	g.mu.Lock()
	g.started = true
	g.mu.Unlock()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			if g.err == nil {
				g.err = errors.Wrap(err, name)
				g.cancel()
			}
			g.mu.Unlock()
		}
	}()
}

// Cancel cancels the Group's Context without recording an error.
func (g *Group) Cancel() { g.cancel() }

// Wait blocks until every queued task has returned, then returns the first
// non-nil error (if any).
func (g *Group) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Started reports whether any task has ever been queued.
func (g *Group) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started
}

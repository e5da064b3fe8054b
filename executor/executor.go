// Package executor provides the FIFO, single-goroutine event loop that the
// dispatch and pool packages treat as "an executor thread": a per-thread
// queue that runs closures submitted to it, one at a time, in submission
// order.
//
// The queue itself is an unbounded slice guarded by a mutex and a sync.Cond,
// rather than a fixed-capacity channel: a bounded channel would make Submit
// block once full, and a Queued delivery here must never block its sender
// — including a worker's own executor submitting a ready notification back
// to a controller executor that is itself blocked waiting for that worker
// to quit (see pool.workerController.setThreadCount). A Queued delivery is
// meant to be fire-and-forget regardless of the receiver's current state;
// an unbounded queue is what makes Submit able to honor that.
package executor

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/zihao-chen/taskmesh/internal/gid"
)

// Executor is a single dedicated goroutine draining a FIFO queue of
// closures. It is the unit of thread-affinity used by dispatch.SlotEndpoint.
type Executor struct {
	lock  sync.Mutex
	cond  *sync.Cond
	queue []func()
	closed bool

	stopped chan struct{}

	gid     atomic.Uint64
	started atomic.Bool

	panicHandler func(any)
	logger       Logger

	panicsMu sync.Mutex
	panics   []error
}

// New creates an Executor. The returned Executor is not yet running; call
// Start to spawn its goroutine. QueueSize, if set, only preallocates the
// internal queue's backing array; it is not a capacity limit.
func New(opts ...Option) *Executor {
	o := newOptions(opts...)
	e := &Executor{
		stopped:      make(chan struct{}),
		panicHandler: o.PanicHandler,
		logger:       o.Logger,
	}
	if o.QueueSize > 0 {
		e.queue = make([]func(), 0, o.QueueSize)
	}
	e.cond = sync.NewCond(&e.lock)
	return e
}

// Start spawns the executor's goroutine. Start must be called exactly once
// and blocks until the goroutine has captured its own identity, so that
// IsCurrent is correct for every call made after Start returns.
func (e *Executor) Start() {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	ready := make(chan struct{})
	go e.loop(ready)
	<-ready
}

func (e *Executor) loop(ready chan struct{}) {
	e.gid.Store(gid.Current())
	close(ready)
	defer close(e.stopped)

	for {
		e.lock.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.lock.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.lock.Unlock()

		e.run(fn)
	}
}

func (e *Executor) run(fn func()) {
	defer e.recoverPanic()
	fn()
}

func (e *Executor) recoverPanic() {
	r := recover()
	if r == nil {
		return
	}
	e.panicsMu.Lock()
	e.panics = append(e.panics, fmt.Errorf("executor: closure panicked: %v", r))
	e.panicsMu.Unlock()

	if e.panicHandler != nil {
		e.panicHandler(r)
		return
	}
	if e.logger != nil {
		e.logger.Printf("executor: closure panicked: %v\n%s", r, debug.Stack())
	}
}

// Errors returns every panic recovered from a submitted closure over this
// executor's lifetime, oldest first. A caller doing orderly teardown (see
// pool.Controller.Close) collects these from every executor it owns instead
// of letting a worker's panic vanish silently once its goroutine exits.
func (e *Executor) Errors() []error {
	e.panicsMu.Lock()
	defer e.panicsMu.Unlock()
	if len(e.panics) == 0 {
		return nil
	}
	out := make([]error, len(e.panics))
	copy(out, e.panics)
	return out
}

// Submit enqueues fn to run on the executor's goroutine and returns
// immediately (Queued semantics), never blocking on the receiver's state.
// It reports whether fn was accepted; it is rejected only once the executor
// has had Stop called on it.
func (e *Executor) Submit(fn func()) bool {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return false
	}
	e.queue = append(e.queue, fn)
	e.lock.Unlock()
	e.cond.Signal()
	return true
}

// SubmitWait enqueues fn and blocks until it has run (BlockingQueued
// semantics). It reports whether fn ran to completion; it returns false
// without running fn if Stop has already been called.
func (e *Executor) SubmitWait(fn func()) bool {
	done := make(chan struct{})
	if !e.Submit(func() {
		defer close(done)
		fn()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-e.stopped:
		return false
	}
}

// IsCurrent reports whether the calling goroutine is this executor's own
// goroutine. Used to resolve Auto delivery and to detect a BlockingQueued
// call that would deadlock against itself.
func (e *Executor) IsCurrent() bool {
	return e.started.Load() && e.gid.Load() == gid.Current()
}

// Stop requests the executor's goroutine to exit once its queue drains.
// Idempotent. It does not wait for the goroutine to actually exit; use Wait
// for that.
func (e *Executor) Stop() {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return
	}
	e.closed = true
	e.lock.Unlock()
	e.cond.Broadcast()
}

// Wait blocks until the executor's goroutine has exited.
func (e *Executor) Wait() {
	<-e.stopped
}

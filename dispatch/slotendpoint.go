package dispatch

import (
	"sync"

	"github.com/zihao-chen/taskmesh/internal/gid"
	"github.com/zihao-chen/taskmesh/executor"
)

// SlotEndpoint is a thread-bound receiver context: it tracks which
// SignalEndpoints can currently reach it (so it can be cleaned up
// atomically on Close) and maintains the per-goroutine sender stack
// CurrentSender reads.
type SlotEndpoint struct {
	exec *executor.Executor

	mu      sync.Mutex
	forward map[SignalRef]map[SlotID]struct{}

	senderMu    sync.Mutex
	senderStack map[uint64][]SignalRef
}

// NewSlotEndpoint creates a SlotEndpoint bound to the given executor. All
// Queued/BlockingQueued/Auto deliveries aimed at it run on that executor's
// goroutine.
func NewSlotEndpoint(exec *executor.Executor) *SlotEndpoint {
	return &SlotEndpoint{
		exec:        exec,
		forward:     make(map[SignalRef]map[SlotID]struct{}),
		senderStack: make(map[uint64][]SignalRef),
	}
}

// Executor returns the executor this endpoint is currently bound to.
func (se *SlotEndpoint) Executor() *executor.Executor {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.exec
}

// Rebind moves this SlotEndpoint to a different executor. Existing
// connections are unaffected; future deliveries run on the new executor.
func (se *SlotEndpoint) Rebind(exec *executor.Executor) {
	se.mu.Lock()
	se.exec = exec
	se.mu.Unlock()
}

// registerForward records that sig can reach se via id. Called by a
// SignalEndpoint's connect, which already holds globalMu.
func (se *SlotEndpoint) registerForward(sig SignalRef, id SlotID) {
	se.mu.Lock()
	defer se.mu.Unlock()
	ids, ok := se.forward[sig]
	if !ok {
		ids = make(map[SlotID]struct{})
		se.forward[sig] = ids
	}
	ids[id] = struct{}{}
}

// unregisterForward removes the (sig, id) row; id == zeroSlotID removes
// every row naming sig. Called with globalMu held.
func (se *SlotEndpoint) unregisterForward(sig SignalRef, id SlotID) {
	se.mu.Lock()
	defer se.mu.Unlock()
	ids, ok := se.forward[sig]
	if !ok {
		return
	}
	if id == zeroSlotID {
		delete(se.forward, sig)
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(se.forward, sig)
	}
}

// connectedSignals returns the set of SignalEndpoints currently able to
// reach this slot.
func (se *SlotEndpoint) connectedSignals() []SignalRef {
	se.mu.Lock()
	defer se.mu.Unlock()
	out := make([]SignalRef, 0, len(se.forward))
	for sig := range se.forward {
		out = append(out, sig)
	}
	return out
}

// Close notifies every connected SignalEndpoint to drop rows naming this
// slot, atomically with respect to other registrations/disconnects. After
// Close returns, no further emission can reach this slot.
func (se *SlotEndpoint) Close() {
	globalMu.Lock()
	defer globalMu.Unlock()

	se.mu.Lock()
	forward := se.forward
	se.forward = make(map[SignalRef]map[SlotID]struct{})
	se.mu.Unlock()

	for sig, ids := range forward {
		for id := range ids {
			sig.unbind(id, se)
		}
	}
}

// pushSender records sender as the top of this goroutine's stack for this
// slot, runs fn, then pops. This is what makes CurrentSender work from
// inside fn, including a slot that re-emits a signal (S5/reentrancy).
func (se *SlotEndpoint) pushSender(sender SignalRef, fn func()) {
	g := gid.Current()

	se.senderMu.Lock()
	se.senderStack[g] = append(se.senderStack[g], sender)
	se.senderMu.Unlock()

	defer func() {
		se.senderMu.Lock()
		stack := se.senderStack[g]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(se.senderStack, g)
		} else {
			se.senderStack[g] = stack
		}
		se.senderMu.Unlock()
	}()

	fn()
}

// CurrentSender returns the SignalEndpoint whose emission is currently
// executing a slot on this goroutine, or nil outside of that context.
func (se *SlotEndpoint) CurrentSender() SignalRef {
	g := gid.Current()
	se.senderMu.Lock()
	defer se.senderMu.Unlock()
	stack := se.senderStack[g]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

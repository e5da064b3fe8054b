package dispatch

import "sync"

// globalMu is the single process-wide serialization point used whenever a
// mutation spans both a SignalEndpoint and a SlotEndpoint (register,
// disconnect, endpoint destruction). It must always be acquired before any
// endpoint-local mutex, never the reverse.
var globalMu sync.Mutex

// InvokeInContext is the low-level dispatch primitive underlying every
// Connect-based delivery: it runs fn on target's executor under the given
// delivery mode, tracking sender on target for the duration of the call.
// pool uses it directly for its fixed, point-to-point wiring (task
// assignment, result delivery, ready notification) rather than allocating a
// registered Signal for each of those fixed channels.
//
// sender may be nil when the call has no logical SignalEndpoint behind it
// (as is the case for pool's internal wiring); CurrentSender then reports
// nil for that delivery, which is correct since there is no public signal
// to report.
//
// InvokeInContext reports whether fn ran (Direct, and BlockingQueued/Queued
// that were accepted) and panics with ErrDeadlockRisk if mode resolves to
// BlockingQueued against the calling executor itself.
func InvokeInContext(target *SlotEndpoint, mode DeliveryMode, sender SignalRef, fn func()) bool {
	exec := target.Executor()

	resolved := mode
	if resolved == Auto {
		if exec != nil && exec.IsCurrent() {
			resolved = Direct
		} else {
			resolved = Queued
		}
	}

	switch resolved {
	case Direct:
		target.pushSender(sender, fn)
		return true
	case BlockingQueued:
		if exec == nil {
			panic(ErrDeadlockRisk)
		}
		if exec.IsCurrent() {
			panic(ErrDeadlockRisk)
		}
		return exec.SubmitWait(func() { target.pushSender(sender, fn) })
	case Queued:
		if exec == nil {
			return false
		}
		return exec.Submit(func() { target.pushSender(sender, fn) })
	default:
		panic("dispatch: unknown delivery mode")
	}
}

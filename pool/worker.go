package pool

import (
	"sync/atomic"

	"github.com/zihao-chen/taskmesh/dispatch"
	"github.com/zihao-chen/taskmesh/executor"
)

// Worker is the user-subclassed contract a Controller drives. Fulfill runs
// on the worker's own executor thread; Clone constructs a fresh worker with
// equivalent user-supplied state, the prototype pattern a resize uses to
// grow the pool.
type Worker[T, R any] interface {
	Fulfill(task T) R
	Clone() Worker[T, R]
}

// nextInstanceID mints the globally unique, never-reused identifiers that
// let workerController tell a still-live worker's ready notification apart
// from a retired one's.
var nextInstanceID atomic.Uint64

func newInstanceID() uint64 {
	return nextInstanceID.Add(1)
}

// workerHandle is the private record a workerController keeps per live
// worker: its own executor thread, its SlotEndpoint (the target of Queued
// task-assignment deliveries), its index into workerController.workers, and
// the instance-id stamped on it at creation.
type workerHandle[T, R any] struct {
	exec       *executor.Executor
	slot       *dispatch.SlotEndpoint
	index      int
	instanceID uint64
	impl       Worker[T, R]

	// deliverResult and notifyReady are wired by workerController at
	// creation time; they invoke dispatch.InvokeInContext directly against
	// the processor's and controller's slots respectively. This internal
	// protocol is fixed, point-to-point wiring and has no need for a
	// Signal/Connect registry.
	deliverResult func(R)
	notifyReady   func(index int, instanceID uint64)
}

// receiveTask runs the worker's private protocol: fulfill, then
// Queued-deliver the result to the processor, then Queued-notify the
// controller of readiness.
func (w *workerHandle[T, R]) receiveTask(task T) {
	result := w.impl.Fulfill(task)
	w.deliverResult(result)
	w.notifyReady(w.index, w.instanceID)
}

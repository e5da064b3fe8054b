package pool

import "github.com/zihao-chen/taskmesh/dispatch"

// Processor is the abstract contract a user subclasses: OnResult is called
// on the processor's own executor thread once per completed task. The
// interface is sealed — wire is unexported, so only types embedding
// ProcessorBase[T, R] (which implements it) can satisfy Processor[T, R].
type Processor[T, R any] interface {
	OnResult(result R)

	wire(
		procSlot, ctrlSlot *dispatch.SlotEndpoint,
		setThreadCount func(int) error,
		clearQueue func() error,
		extendQueue func([]T) error,
	)
}

// ProcessorBase gives a concrete processor three protected operations:
// SetThreadCount, ClearQueue, ExtendQueue, each forwarded as a
// BlockingQueued call to the owning workerController. A concrete processor
// embeds this type and implements OnResult.
type ProcessorBase[T, R any] struct {
	procSlot *dispatch.SlotEndpoint
	ctrlSlot *dispatch.SlotEndpoint

	setThreadCountFn func(int) error
	clearQueueFn     func() error
	extendQueueFn    func([]T) error
}

func (p *ProcessorBase[T, R]) wire(
	procSlot, ctrlSlot *dispatch.SlotEndpoint,
	setThreadCount func(int) error,
	clearQueue func() error,
	extendQueue func([]T) error,
) {
	p.procSlot = procSlot
	p.ctrlSlot = ctrlSlot
	p.setThreadCountFn = setThreadCount
	p.clearQueueFn = clearQueue
	p.extendQueueFn = extendQueue
}

// SetThreadCount requests the pool resize to n workers. Must be called from
// the processor's own executor thread (i.e. from within OnResult or another
// callback the framework invoked on that thread); calling it before
// Controller construction has wired this processor returns ErrNotWired.
func (p *ProcessorBase[T, R]) SetThreadCount(n int) error {
	if p.setThreadCountFn == nil {
		return ErrNotWired
	}
	return p.setThreadCountFn(n)
}

// ClearQueue drops every not-yet-assigned task. In-flight tasks are
// unaffected.
func (p *ProcessorBase[T, R]) ClearQueue() error {
	if p.clearQueueFn == nil {
		return ErrNotWired
	}
	return p.clearQueueFn()
}

// ExtendQueue appends newTasks to the pending queue and assigns them to any
// idle workers immediately.
func (p *ProcessorBase[T, R]) ExtendQueue(newTasks []T) error {
	if p.extendQueueFn == nil {
		return ErrNotWired
	}
	return p.extendQueueFn(newTasks)
}

// Slot exposes this processor's own SlotEndpoint, e.g. for a caller who
// wants to bridge its own dispatch.SignalN into OnResult notifications.
// Returns nil before wiring completes.
func (p *ProcessorBase[T, R]) Slot() *dispatch.SlotEndpoint {
	return p.procSlot
}

package pool

import (
	"github.com/zihao-chen/taskmesh/dispatch"
	"github.com/zihao-chen/taskmesh/executor"
)

// workerController owns the worker set and task queue. Every field below
// is touched only from the goroutine running behind slot's executor;
// callers reach these unexported operations exclusively through
// dispatch.InvokeInContext targeting slot, which is how that single-writer
// rule is enforced without an explicit mutex.
type workerController[T, R any] struct {
	slot *dispatch.SlotEndpoint

	processor     Processor[T, R]
	processorSlot *dispatch.SlotEndpoint
	prototype     Worker[T, R]

	opts *Options

	workers     []*workerHandle[T, R]
	tasks       []T
	ready       map[int]struct{}
	destructing bool

	// retiredErrors accumulates panics recovered from every worker executor
	// that has ever been stopped by a resize, across the workerController's
	// whole lifetime. Controller.Close reads and aggregates it on the way
	// out.
	retiredErrors []error
}

// setThreadCount resizes the worker set: shrink, grow, or the special case
// of tearing every worker down.
func (wc *workerController[T, R]) setThreadCount(n int) {
	current := len(wc.workers)

	switch {
	case n == 0:
		for _, h := range wc.workers {
			h.exec.Stop()
		}
		for _, h := range wc.workers {
			h.exec.Wait()
			wc.retiredErrors = append(wc.retiredErrors, h.exec.Errors()...)
		}
		wc.workers = nil
		wc.ready = make(map[int]struct{})

	case n < current:
		for i := current - 1; i >= n; i-- {
			wc.workers[i].exec.Stop()
		}
		for i := current - 1; i >= n; i-- {
			wc.workers[i].exec.Wait()
			wc.retiredErrors = append(wc.retiredErrors, wc.workers[i].exec.Errors()...)
			delete(wc.ready, i)
		}
		wc.workers = wc.workers[:n]

	case !wc.destructing && n > current:
		for i := current; i < n; i++ {
			wc.spawnWorker(i)
		}
		wc.assignTasks()
	}
}

// spawnWorker clones the prototype, gives it its own executor, and wires its
// private protocol (receiveTask -> deliverResult -> notifyReady) directly
// via dispatch.InvokeInContext.
func (wc *workerController[T, R]) spawnWorker(index int) {
	impl := wc.prototype.Clone()

	var eo []executor.Option
	if wc.opts != nil {
		eo = wc.opts.executorOptions()
	}
	exec := executor.New(eo...)
	exec.Start()

	h := &workerHandle[T, R]{
		exec:       exec,
		slot:       dispatch.NewSlotEndpoint(exec),
		index:      index,
		instanceID: newInstanceID(),
		impl:       impl,
	}

	processor := wc.processor
	processorSlot := wc.processorSlot
	ctrlSlot := wc.slot

	h.deliverResult = func(r R) {
		dispatch.InvokeInContext(processorSlot, dispatch.Queued, nil, func() {
			processor.OnResult(r)
		})
	}
	h.notifyReady = func(index int, instanceID uint64) {
		dispatch.InvokeInContext(ctrlSlot, dispatch.Queued, nil, func() {
			wc.workerFinished(index, instanceID)
		})
	}

	wc.workers = append(wc.workers, h)
	wc.ready[index] = struct{}{}
}

// clearQueue drops all not-yet-assigned tasks.
func (wc *workerController[T, R]) clearQueue() {
	if wc.destructing {
		return
	}
	wc.tasks = nil
}

// extendQueue appends newTasks and assigns whatever it can immediately.
func (wc *workerController[T, R]) extendQueue(newTasks []T) {
	if wc.destructing {
		return
	}
	wc.tasks = append(wc.tasks, newTasks...)
	wc.assignTasks()
}

// assignTasks drains ready workers against pending tasks; the order in
// which ready indices are chosen is unspecified, a natural consequence of
// using a map as the ready set.
func (wc *workerController[T, R]) assignTasks() {
	for len(wc.tasks) > 0 && len(wc.ready) > 0 {
		var index int
		for i := range wc.ready {
			index = i
			break
		}
		delete(wc.ready, index)

		task := wc.tasks[0]
		wc.tasks = wc.tasks[1:]

		h := wc.workers[index]
		dispatch.InvokeInContext(h.slot, dispatch.Queued, nil, func() {
			h.receiveTask(task)
		})
	}
}

// workerFinished re-admits a worker to the ready set unless it has since
// been retired by a resize, which the instance-id check below detects.
func (wc *workerController[T, R]) workerFinished(index int, instanceID uint64) {
	if index < len(wc.workers) && wc.workers[index].instanceID == instanceID {
		wc.ready[index] = struct{}{}
		wc.assignTasks()
	}
}

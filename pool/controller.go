package pool

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	taskmeshctx "github.com/zihao-chen/taskmesh/context"
	"github.com/zihao-chen/taskmesh/dispatch"
	"github.com/zihao-chen/taskmesh/executor"
)

// Controller is the top-level owner of a worker pool: it places the
// workerController on its own executor thread, gives the processor its own
// executor thread, and guarantees orderly teardown. Construction returns
// once the pool is fully wired.
type Controller[T, R any] struct {
	wc *workerController[T, R]

	processorExec  *executor.Executor
	controllerExec *executor.Executor
	ctrlSlot       *dispatch.SlotEndpoint

	closed atomic.Bool
	stats  *taskmeshctx.CtxCancel
}

// NewController constructs a Controller, spawning the processor's and the
// controller's own executor threads plus threadCount worker executors, and
// wiring processor to the fresh workerController before returning.
// Ownership of processor and prototype passes to the Controller.
func NewController[T, R any](
	processor Processor[T, R],
	prototype Worker[T, R],
	threadCount int,
	opts ...Option,
) (*Controller[T, R], error) {
	o := NewOptions(opts...)

	processorExec := executor.New(o.executorOptions()...)
	processorExec.Start()
	controllerExec := executor.New(o.executorOptions()...)
	controllerExec.Start()

	processorSlot := dispatch.NewSlotEndpoint(processorExec)
	ctrlSlot := dispatch.NewSlotEndpoint(controllerExec)

	wc := &workerController[T, R]{
		slot:          ctrlSlot,
		processor:     processor,
		processorSlot: processorSlot,
		prototype:     prototype,
		opts:          o,
		ready:         make(map[int]struct{}),
	}

	processor.wire(
		processorSlot, ctrlSlot,
		func(n int) error {
			if !dispatch.InvokeInContext(ctrlSlot, dispatch.BlockingQueued, nil, func() { wc.setThreadCount(n) }) {
				return ErrControllerClosed
			}
			return nil
		},
		func() error {
			if !dispatch.InvokeInContext(ctrlSlot, dispatch.BlockingQueued, nil, func() { wc.clearQueue() }) {
				return ErrControllerClosed
			}
			return nil
		},
		func(tasks []T) error {
			if !dispatch.InvokeInContext(ctrlSlot, dispatch.BlockingQueued, nil, func() { wc.extendQueue(tasks) }) {
				return ErrControllerClosed
			}
			return nil
		},
	)

	// Initial worker population happens directly on the constructing
	// goroutine, before anything else can reach wc concurrently: nothing
	// else has a reference to wc or processor yet, so this is safe without
	// going through ctrlSlot at all.
	wc.setThreadCount(threadCount)

	c := &Controller[T, R]{
		wc:             wc,
		processorExec:  processorExec,
		controllerExec: controllerExec,
		ctrlSlot:       ctrlSlot,
	}

	if o.StatsInterval > 0 {
		c.startStats(o)
	}

	return c, nil
}

// ThreadCount reports the current worker count as of a point-in-time
// snapshot taken on the controller's own executor.
func (c *Controller[T, R]) ThreadCount() int {
	var n int
	dispatch.InvokeInContext(c.ctrlSlot, dispatch.BlockingQueued, nil, func() { n = len(c.wc.workers) })
	return n
}

// Ready reports the number of currently idle workers.
func (c *Controller[T, R]) Ready() int {
	var n int
	dispatch.InvokeInContext(c.ctrlSlot, dispatch.BlockingQueued, nil, func() { n = len(c.wc.ready) })
	return n
}

// Queued reports the number of tasks waiting for a worker.
func (c *Controller[T, R]) Queued() int {
	var n int
	dispatch.InvokeInContext(c.ctrlSlot, dispatch.BlockingQueued, nil, func() { n = len(c.wc.tasks) })
	return n
}

// Close marks the pool destructing, stops and joins every worker, then
// stops the processor and controller executors. Idempotent. The returned
// error aggregates, via multierr, every panic recovered from a worker's
// Fulfill, the processor's OnResult, or the controller's own closures over
// the pool's whole lifetime; nil if none occurred.
//
// A caller may have a BlockingQueued call in flight against the processor
// or controller executor at the moment Close is called; that poses no risk
// here, since every executor.Executor keeps draining its own queue
// independently until Stop is called on it, so the in-flight reply is
// serviced normally before teardown proceeds.
func (c *Controller[T, R]) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.stats != nil {
		c.stats.Cancel()
	}

	dispatch.InvokeInContext(c.ctrlSlot, dispatch.BlockingQueued, nil, func() {
		c.wc.destructing = true
		c.wc.setThreadCount(0)
	})

	c.processorExec.Stop()
	c.processorExec.Wait()
	c.controllerExec.Stop()
	c.controllerExec.Wait()

	var err error
	for _, e := range c.wc.retiredErrors {
		err = multierr.Append(err, e)
	}
	err = multierr.Append(err, multierr.Combine(c.processorExec.Errors()...))
	err = multierr.Append(err, multierr.Combine(c.controllerExec.Errors()...))
	return err
}

// startStats launches the purely observational stats-logging goroutine,
// using the shared CtxCancel wrapper instead of a hand-rolled
// context/cancel pair.
func (c *Controller[T, R]) startStats(o *Options) {
	cc := taskmeshctx.NewContextWithCancel(context.Background())
	c.stats = cc
	go func() {
		ticker := time.NewTicker(o.StatsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cc.Ctx.Done():
				return
			case <-ticker.C:
				if o.Logger != nil {
					o.Logger.Printf("pool: threads=%d ready=%d queued=%d", c.ThreadCount(), c.Ready(), c.Queued())
				}
			}
		}
	}()
}

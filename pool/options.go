package pool

import (
	"time"

	"github.com/zihao-chen/taskmesh/executor"
)

// Logger is re-exported from executor so callers configuring a Controller
// don't need to import both packages for one interface.
type Logger = executor.Logger

// Options configures a Controller. Mirrors the functional-options shape the
// teacher's options.go uses for its Pool.
type Options struct {
	// PanicHandler, if set, receives the recovered value whenever a worker's
	// Fulfill or the processor's OnResult panics. Forwarded to every
	// executor this Controller owns.
	PanicHandler func(any)
	// Logger receives a line when a closure panics and PanicHandler is nil,
	// and (if StatsInterval is non-zero) a periodic pool-state summary.
	Logger Logger
	// StatsInterval, if non-zero, starts a goroutine that logs
	// ThreadCount/Ready/Queued at this cadence. Purely observational: it
	// never mutates pool state, so it cannot change any invariant around
	// worker expiry (this framework has none — resizing is always explicit).
	StatsInterval time.Duration
	// ExecutorQueueSize preallocates the closure queue of every executor the
	// Controller creates (workers, processor, controller itself). It is a
	// sizing hint only; the queues are unbounded.
	ExecutorQueueSize int
}

type Option func(*Options)

func WithPanicHandler(h func(any)) Option {
	return func(o *Options) { o.PanicHandler = h }
}

func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithStatsInterval(d time.Duration) Option {
	return func(o *Options) { o.StatsInterval = d }
}

func WithExecutorQueueSize(n int) Option {
	return func(o *Options) { o.ExecutorQueueSize = n }
}

func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) executorOptions() []executor.Option {
	var eo []executor.Option
	if o.ExecutorQueueSize > 0 {
		eo = append(eo, executor.WithQueueSize(o.ExecutorQueueSize))
	}
	if o.PanicHandler != nil {
		eo = append(eo, executor.WithPanicHandler(o.PanicHandler))
	}
	if o.Logger != nil {
		eo = append(eo, executor.WithLogger(o.Logger))
	}
	return eo
}

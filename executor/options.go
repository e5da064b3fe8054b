package executor

// Logger is the minimal logging surface the executor needs. It is satisfied
// by *zap.SugaredLogger through the adapter in this package, by the standard
// library's *log.Logger, or by any other logger a caller already has lying
// around.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configures an Executor. Mirrors the functional-options shape used
// throughout this module (see pool.Options).
type Options struct {
	// QueueSize preallocates the executor's internal queue to this capacity.
	// It is a sizing hint only; the queue is unbounded and Submit never
	// blocks regardless of this value.
	QueueSize int
	// PanicHandler, if set, receives the recovered value whenever a
	// submitted closure panics. The executor's loop survives regardless.
	PanicHandler func(any)
	// Logger receives a line when a closure panics and PanicHandler is nil.
	Logger Logger
}

type Option func(*Options)

func WithQueueSize(n int) Option {
	return func(o *Options) { o.QueueSize = n }
}

func WithPanicHandler(h func(any)) Option {
	return func(o *Options) { o.PanicHandler = h }
}

func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func newOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

package pool

import "errors"

// Sentinel errors for this package, grouped by concern.
var (
	// ErrControllerClosed is returned when a protected Processor operation
	// (SetThreadCount/ClearQueue/ExtendQueue) is attempted after Close has
	// stopped the controller's executor. Calls that reach the controller
	// after Close has marked it destructing, but before its executor stops,
	// return nil and have no effect.
	ErrControllerClosed = errors.New("pool: controller is shutting down")

	// ErrNotWired is returned by ProcessorBase's protected operations when
	// called before Controller construction has finished wiring the
	// processor to its workerController.
	ErrNotWired = errors.New("pool: processor is not wired to a controller")
)

package dispatch

import "errors"

var (
	// ErrInvalidArgument is returned by a SignalN.Disconnect call that names
	// neither a slot id nor a receiver. Disconnecting every row of a signal
	// at once is not supported through Disconnect.
	ErrInvalidArgument = errors.New("dispatch: disconnect requires a slot id or a receiver")

	// ErrDeadlockRisk is the panic value raised by InvokeInContext when a
	// BlockingQueued call targets the calling executor itself.
	ErrDeadlockRisk = errors.New("dispatch: BlockingQueued delivery targets the calling executor, would deadlock")
)

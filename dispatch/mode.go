package dispatch

// DeliveryMode selects how an emission reaches a connected slot.
type DeliveryMode int

const (
	// Direct invokes the slot synchronously on the emitter's goroutine.
	Direct DeliveryMode = iota
	// Queued enqueues a closure on the receiver's executor and returns
	// immediately.
	Queued
	// BlockingQueued enqueues a closure on the receiver's executor and
	// blocks until it has run. Using it against the emitter's own
	// executor is a programming error (ErrDeadlockRisk).
	BlockingQueued
	// Auto resolves to Direct when the emitting goroutine is the receiver's
	// executor, else Queued.
	Auto
)

func (m DeliveryMode) String() string {
	switch m {
	case Direct:
		return "Direct"
	case Queued:
		return "Queued"
	case BlockingQueued:
		return "BlockingQueued"
	case Auto:
		return "Auto"
	default:
		return "DeliveryMode(?)"
	}
}

package dispatch

import "github.com/zihao-chen/taskmesh/executor"

// Signal0 is a SignalEndpoint carrying no arguments.
type Signal0 struct {
	core[func()]
	*SlotEndpoint
}

// NewSignal0 creates a Signal0. exec is the executor this signal uses when
// it is itself connected as a slot (signal-to-signal chaining); it has no
// bearing on emission to its own connected slots.
func NewSignal0(exec *executor.Executor) *Signal0 {
	return &Signal0{SlotEndpoint: NewSlotEndpoint(exec)}
}

// Connect registers slot to run under mode whenever this signal emits.
// Returns false if (recv, id) was already connected (a no-op).
func (s *Signal0) Connect(recv *SlotEndpoint, id SlotID, slot func(), mode DeliveryMode) bool {
	invoker := func() {
		InvokeInContext(recv, mode, s, slot)
	}
	return s.core.connect(s, recv, id, invoker)
}

// Disconnect removes the connection(s) matching the given wildcard pair. At
// least one of id/recv must be non-zero/non-nil.
func (s *Signal0) Disconnect(id SlotID, recv *SlotEndpoint) error {
	if id == zeroSlotID && recv == nil {
		return ErrInvalidArgument
	}
	s.core.disconnect(s, id, recv)
	return nil
}

// Emit invokes every connected slot in insertion order per receiver.
func (s *Signal0) Emit() {
	for _, r := range s.core.snapshot() {
		r.fn()
	}
}

// AsSlot exposes this signal's emission as a callable slot, so it can be
// connected as the target of another signal (chaining/fan-out).
func (s *Signal0) AsSlot() func() { return s.Emit }

// Close disconnects this signal from every receiver and, since a
// SignalEndpoint is also a SlotEndpoint, notifies every signal connected
// to it in turn. After Close returns, no further emission reaches it.
func (s *Signal0) Close() {
	s.core.destroy(s)
	s.SlotEndpoint.Close()
}

func (s *Signal0) unbind(id SlotID, slot *SlotEndpoint) { s.core.unbind(id, slot) }

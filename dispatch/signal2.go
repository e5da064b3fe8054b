package dispatch

import "github.com/zihao-chen/taskmesh/executor"

// Signal2 is a SignalEndpoint carrying two arguments. The worker pool's own
// ready-notifications deliver a comparable (workerIndex, instanceID) pair,
// but through a direct InvokeInContext closure rather than through a Signal2
// instance — the pool never needs a registry of independently-connectable
// listeners for that fixed, point-to-point wiring.
type Signal2[A, B any] struct {
	core[func(A, B)]
	*SlotEndpoint
}

func NewSignal2[A, B any](exec *executor.Executor) *Signal2[A, B] {
	return &Signal2[A, B]{SlotEndpoint: NewSlotEndpoint(exec)}
}

func (s *Signal2[A, B]) Connect(recv *SlotEndpoint, id SlotID, slot func(A, B), mode DeliveryMode) bool {
	invoker := func(a A, b B) {
		InvokeInContext(recv, mode, s, func() { slot(a, b) })
	}
	return s.core.connect(s, recv, id, invoker)
}

func (s *Signal2[A, B]) Disconnect(id SlotID, recv *SlotEndpoint) error {
	if id == zeroSlotID && recv == nil {
		return ErrInvalidArgument
	}
	s.core.disconnect(s, id, recv)
	return nil
}

func (s *Signal2[A, B]) Emit(a A, b B) {
	for _, r := range s.core.snapshot() {
		r.fn(a, b)
	}
}

func (s *Signal2[A, B]) AsSlot() func(A, B) { return s.Emit }

func (s *Signal2[A, B]) Close() {
	s.core.destroy(s)
	s.SlotEndpoint.Close()
}

func (s *Signal2[A, B]) unbind(id SlotID, slot *SlotEndpoint) { s.core.unbind(id, slot) }

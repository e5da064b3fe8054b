package dispatch

import "github.com/zihao-chen/taskmesh/executor"

// Signal1 is a SignalEndpoint carrying one argument of type A.
type Signal1[A any] struct {
	core[func(A)]
	*SlotEndpoint
}

func NewSignal1[A any](exec *executor.Executor) *Signal1[A] {
	return &Signal1[A]{SlotEndpoint: NewSlotEndpoint(exec)}
}

func (s *Signal1[A]) Connect(recv *SlotEndpoint, id SlotID, slot func(A), mode DeliveryMode) bool {
	invoker := func(a A) {
		InvokeInContext(recv, mode, s, func() { slot(a) })
	}
	return s.core.connect(s, recv, id, invoker)
}

func (s *Signal1[A]) Disconnect(id SlotID, recv *SlotEndpoint) error {
	if id == zeroSlotID && recv == nil {
		return ErrInvalidArgument
	}
	s.core.disconnect(s, id, recv)
	return nil
}

func (s *Signal1[A]) Emit(a A) {
	for _, r := range s.core.snapshot() {
		r.fn(a)
	}
}

func (s *Signal1[A]) AsSlot() func(A) { return s.Emit }

func (s *Signal1[A]) Close() {
	s.core.destroy(s)
	s.SlotEndpoint.Close()
}

func (s *Signal1[A]) unbind(id SlotID, slot *SlotEndpoint) { s.core.unbind(id, slot) }

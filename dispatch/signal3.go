package dispatch

import "github.com/zihao-chen/taskmesh/executor"

// Signal3 is a SignalEndpoint carrying three arguments. Provided for
// library users whose slots need more than two values; the pool itself
// never needs more than Signal2.
type Signal3[A, B, C any] struct {
	core[func(A, B, C)]
	*SlotEndpoint
}

func NewSignal3[A, B, C any](exec *executor.Executor) *Signal3[A, B, C] {
	return &Signal3[A, B, C]{SlotEndpoint: NewSlotEndpoint(exec)}
}

func (s *Signal3[A, B, C]) Connect(recv *SlotEndpoint, id SlotID, slot func(A, B, C), mode DeliveryMode) bool {
	invoker := func(a A, b B, c C) {
		InvokeInContext(recv, mode, s, func() { slot(a, b, c) })
	}
	return s.core.connect(s, recv, id, invoker)
}

func (s *Signal3[A, B, C]) Disconnect(id SlotID, recv *SlotEndpoint) error {
	if id == zeroSlotID && recv == nil {
		return ErrInvalidArgument
	}
	s.core.disconnect(s, id, recv)
	return nil
}

func (s *Signal3[A, B, C]) Emit(a A, b B, c C) {
	for _, r := range s.core.snapshot() {
		r.fn(a, b, c)
	}
}

func (s *Signal3[A, B, C]) AsSlot() func(A, B, C) { return s.Emit }

func (s *Signal3[A, B, C]) Close() {
	s.core.destroy(s)
	s.SlotEndpoint.Close()
}

func (s *Signal3[A, B, C]) unbind(id SlotID, slot *SlotEndpoint) { s.core.unbind(id, slot) }

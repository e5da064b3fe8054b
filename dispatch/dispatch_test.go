package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/zihao-chen/taskmesh/executor"
)

func newRunningExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	e := executor.New()
	e.Start()
	t.Cleanup(func() {
		e.Stop()
		e.Wait()
	})
	return e
}

// Property 1: repeated Connect yields exactly one live row; Disconnect
// returns the pair to zero rows.
func TestUniquenessOfConnection(t *testing.T) {
	exA := newRunningExecutor(t)
	sig := NewSignal1[int](exA)
	slot := NewSlotEndpoint(exA)

	var calls int
	id := NewSlotID(func(int) {})
	fn := func(int) { calls++ }

	if !sig.Connect(slot, id, fn, Direct) {
		t.Fatalf("first Connect should report a new connection")
	}
	if sig.Connect(slot, id, fn, Direct) {
		t.Fatalf("duplicate Connect should be a no-op")
	}

	sig.Emit(1)
	if calls != 1 {
		t.Fatalf("expected exactly one invocation despite duplicate connect, got %d", calls)
	}

	if err := sig.Disconnect(id, slot); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	sig.Emit(2)
	if calls != 1 {
		t.Fatalf("slot invoked after disconnect: calls=%d", calls)
	}
}

// Property 2: a disconnect that happens-before an emission means the slot
// is not invoked by that emission.
func TestNoDeliveryAfterDisconnect(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal0(ex)
	slot := NewSlotEndpoint(ex)

	var invoked bool
	id := NewSlotID(func() {})
	sig.Connect(slot, id, func() { invoked = true }, Direct)
	sig.Disconnect(id, slot)
	sig.Emit()

	if invoked {
		t.Fatalf("slot invoked after disconnect happened-before emission")
	}
}

// Property 3: destruction safety — after Close, nothing can reach the
// closed endpoint from either side.
func TestDestructionSafetySignalSide(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal0(ex)
	slot := NewSlotEndpoint(ex)
	var invoked bool
	sig.Connect(slot, NewSlotID(func() {}), func() { invoked = true }, Direct)

	sig.Close()
	sig.Emit() // emitting a closed signal must be a harmless no-op

	if invoked {
		t.Fatalf("slot invoked via a destroyed signal")
	}
}

func TestDestructionSafetySlotSide(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal0(ex)
	slot := NewSlotEndpoint(ex)
	var invoked bool
	sig.Connect(slot, NewSlotID(func() {}), func() { invoked = true }, Direct)

	slot.Close()
	sig.Emit()

	if invoked {
		t.Fatalf("slot invoked after its SlotEndpoint was closed")
	}
}

// Property 4: successive Queued deliveries from the same emitter to the
// same receiver execute on the receiver's executor in emission order.
func TestFIFOPerPair(t *testing.T) {
	ex := newRunningExecutor(t)
	recvExec := newRunningExecutor(t)
	sig := NewSignal1[int](ex)
	slot := NewSlotEndpoint(recvExec)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(10)
	sig.Connect(slot, NewSlotID(func(int) {}), func(i int) {
		defer wg.Done()
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
	}, Queued)

	for i := 0; i < 10; i++ {
		sig.Emit(i)
	}
	wg.Wait()

	for i, v := range order {
		if v != i {
			t.Fatalf("Queued deliveries executed out of order: %v", order)
		}
	}
}

// S4: chained signals E1 -> E2 -> R.
func TestChainedSignals(t *testing.T) {
	ex := newRunningExecutor(t)
	e1 := NewSignal1[string](ex)
	e2 := NewSignal1[string](ex)
	recvSlot := NewSlotEndpoint(ex)

	var received []string
	recvID := NewSlotID(func(string) {})
	e2.Connect(recvSlot, recvID, func(s string) {
		received = append(received, s)
	}, Direct)

	// e1 -> e2: connect e2 itself as the slot (signal-to-signal chaining).
	e1.Connect(e2.SlotEndpoint, NewSlotID(e2.AsSlot()), e2.AsSlot(), Direct)

	e1.Emit("x")
	if len(received) != 1 || received[0] != "x" {
		t.Fatalf("expected exactly one delivery of %q, got %v", "x", received)
	}

	e2.Disconnect(recvID, recvSlot)
	e1.Emit("x")
	if len(received) != 1 {
		t.Fatalf("expected no further deliveries after disconnecting e2->R, got %v", received)
	}
}

// S5: Auto mode resolves to Direct on the same executor, Queued across
// executors, and CurrentSender reports the emitting signal either way.
func TestAutoModeAndCurrentSender(t *testing.T) {
	sharedExec := newRunningExecutor(t)
	sig := NewSignal1[int](sharedExec)
	recvSlot := NewSlotEndpoint(sharedExec)

	var sawSender SignalRef
	var wg sync.WaitGroup
	sig.Connect(recvSlot, NewSlotID(func(int) {}), func(int) {
		sawSender = recvSlot.CurrentSender()
		wg.Done()
	}, Auto)

	wg.Add(1)
	sharedExec.Submit(func() { sig.Emit(1) }) // same executor as recvSlot: resolves to Direct, runs inline
	wg.Wait()
	if sawSender != SignalRef(sig) {
		t.Fatalf("CurrentSender = %v, want the emitting signal", sawSender)
	}

	otherExec := newRunningExecutor(t)
	wg.Add(1)
	otherExec.Submit(func() { sig.Emit(2) }) // cross-executor: resolves to Queued
	wg.Wait()
	if sawSender != SignalRef(sig) {
		t.Fatalf("CurrentSender across executors = %v, want the emitting signal", sawSender)
	}
}

// BlockingQueued aimed at the emitter's own executor must be rejected.
func TestBlockingQueuedToSelfPanics(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal0(ex)
	slot := NewSlotEndpoint(ex)
	sig.Connect(slot, NewSlotID(func() {}), func() {}, BlockingQueued)

	done := make(chan any, 1)
	ex.Submit(func() {
		defer func() { done <- recover() }()
		sig.Emit()
	})

	select {
	case r := <-done:
		if r != ErrDeadlockRisk {
			t.Fatalf("expected ErrDeadlockRisk panic, got %v", r)
		}
	case <-time.After(time.Second):
		t.Fatalf("emit never returned (deadlocked)")
	}
}

func TestDisconnectRequiresSlotIDOrReceiver(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal0(ex)
	if err := sig.Disconnect(zeroSlotID, nil); err != ErrInvalidArgument {
		t.Fatalf("Disconnect(zeroSlotID, nil) = %v, want ErrInvalidArgument", err)
	}
}

// Signal2 and Signal3 share core with Signal0/Signal1; this exercises
// Connect/Emit/Disconnect on both higher arities, checking that every
// argument is delivered and that nothing is delivered after Disconnect.
func TestSignal2ConnectEmitDisconnect(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal2[int, string](ex)
	slot := NewSlotEndpoint(ex)

	var gotA int
	var gotB string
	var calls int
	id := NewSlotID(func(int, string) {})
	sig.Connect(slot, id, func(a int, b string) {
		gotA, gotB = a, b
		calls++
	}, Direct)

	sig.Emit(7, "seven")
	if calls != 1 || gotA != 7 || gotB != "seven" {
		t.Fatalf("Emit delivered (%d, %q) over %d calls, want (7, \"seven\") over 1 call", gotA, gotB, calls)
	}

	if err := sig.Disconnect(id, slot); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	sig.Emit(9, "nine")
	if calls != 1 {
		t.Fatalf("slot invoked after disconnect: calls=%d", calls)
	}
}

func TestSignal3ConnectEmitDisconnect(t *testing.T) {
	ex := newRunningExecutor(t)
	sig := NewSignal3[int, string, bool](ex)
	slot := NewSlotEndpoint(ex)

	var got [3]any
	var calls int
	id := NewSlotID(func(int, string, bool) {})
	sig.Connect(slot, id, func(a int, b string, c bool) {
		got = [3]any{a, b, c}
		calls++
	}, Direct)

	sig.Emit(1, "one", true)
	if calls != 1 || got != ([3]any{1, "one", true}) {
		t.Fatalf("Emit delivered %v over %d calls, want [1 one true] over 1 call", got, calls)
	}

	if err := sig.Disconnect(id, slot); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	sig.Emit(2, "two", false)
	if calls != 1 {
		t.Fatalf("slot invoked after disconnect: calls=%d", calls)
	}
}

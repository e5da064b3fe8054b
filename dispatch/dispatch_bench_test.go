package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/zihao-chen/taskmesh/executor"
)

const benchRunTimes = 1e4

var benchSink uint64

func BenchmarkDirectGoroutine_FixedEmissions(b *testing.B) {
	b.ReportAllocs()
	var counter uint64
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		wg.Add(benchRunTimes)
		for j := 0; j < benchRunTimes; j++ {
			go func() {
				atomic.AddUint64(&counter, 1)
				wg.Done()
			}()
		}
		wg.Wait()
	}
	benchSink = atomic.LoadUint64(&counter)
}

func BenchmarkErrGroup_FixedEmissions(b *testing.B) {
	b.ReportAllocs()
	var counter uint64
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var grp errgroup.Group
		grp.SetLimit(256)
		for j := 0; j < benchRunTimes; j++ {
			grp.Go(func() error {
				atomic.AddUint64(&counter, 1)
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			b.Fatalf("errgroup: %v", err)
		}
	}
	benchSink = atomic.LoadUint64(&counter)
}

func BenchmarkSignal0_DirectDelivery(b *testing.B) {
	b.ReportAllocs()
	ex := executor.New()
	ex.Start()
	defer func() { ex.Stop(); ex.Wait() }()

	sig := NewSignal0(ex)
	slot := NewSlotEndpoint(ex)
	var counter uint64
	sig.Connect(slot, NewSlotID(func() {}), func() {
		atomic.AddUint64(&counter, 1)
	}, Direct)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < benchRunTimes; j++ {
			sig.Emit()
		}
	}
	benchSink = atomic.LoadUint64(&counter)
}

func BenchmarkSignal0_QueuedDelivery(b *testing.B) {
	b.ReportAllocs()
	senderExec := executor.New()
	senderExec.Start()
	defer func() { senderExec.Stop(); senderExec.Wait() }()

	recvExec := executor.New()
	recvExec.Start()
	defer func() { recvExec.Stop(); recvExec.Wait() }()

	sig := NewSignal0(senderExec)
	slot := NewSlotEndpoint(recvExec)
	var counter uint64
	var wg sync.WaitGroup
	sig.Connect(slot, NewSlotID(func() {}), func() {
		atomic.AddUint64(&counter, 1)
		wg.Done()
	}, Queued)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(benchRunTimes)
		for j := 0; j < benchRunTimes; j++ {
			sig.Emit()
		}
		wg.Wait()
	}
	benchSink = atomic.LoadUint64(&counter)
}

package sync

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestSpinlock(t *testing.T) {
	// Substitute the yieldFn with runtime.Gosched to avoid deadlocks while testing
	defer func(origYieldFn func()) { yieldFn = origYieldFn }(yieldFn)
	yieldFn = runtime.Gosched

	var (
		sl         Spinlock
		wg         sync.WaitGroup
		numWorkers = 10
	)

	sl.Acquire()

	if sl.TryToAcquire() != false {
		t.Error("expected TryToAcquire to return false when lock is held")
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(worker int) {
			sl.Acquire()
			sl.Release()
			wg.Done()
		}(i)
	}

	<-time.After(100 * time.Millisecond)
	sl.Release()
	wg.Wait()
}

func TestIrqSpinlock(t *testing.T) {
	defer func(origDisable func() bool, origRestore func(bool)) {
		irqDisableFn, irqRestoreFn = origDisable, origRestore
	}(irqDisableFn, irqRestoreFn)

	var (
		intsEnabled = true
		restored    []bool
	)

	irqDisableFn = func() bool {
		prev := intsEnabled
		intsEnabled = false
		return prev
	}
	irqRestoreFn = func(wasEnabled bool) {
		restored = append(restored, wasEnabled)
		if wasEnabled {
			intsEnabled = true
		}
	}

	var l IrqSpinlock
	l.Acquire()
	if intsEnabled {
		t.Fatal("expected interrupts to be masked while the lock is held")
	}
	l.Release()
	if !intsEnabled {
		t.Fatal("expected Release to unmask interrupts")
	}

	// When interrupts are already masked at Acquire time, Release must keep
	// them masked.
	intsEnabled = false
	l.Acquire()
	l.Release()
	if intsEnabled {
		t.Fatal("expected Release to preserve the pre-existing interrupt mask")
	}

	if len(restored) != 2 || restored[0] != true || restored[1] != false {
		t.Fatalf("unexpected restore sequence: %v", restored)
	}
}

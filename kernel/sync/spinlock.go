// Package sync provides the synchronization primitives used for sharing
// state between normal kernel context and interrupt handlers: spinlocks, an
// interrupt-masking spinlock and a lock-free bounded queue.
package sync

import (
	"sync/atomic"

	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/irq"
)

var (
	// yieldFn is invoked between acquisition attempts. It is a no-op on
	// bare metal and is swapped for runtime.Gosched by tests so that
	// contending goroutines can make progress.
	yieldFn = func() {}

	irqDisableFn = irq.Disable
	irqRestoreFn = irq.Restore
)

// Spinlock implements a lock where each task trying to acquire it busy-waits
// till the lock becomes available. Any attempt to re-acquire a lock already
// held by the current task will cause a deadlock.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the currently active task.
func (l *Spinlock) Acquire() {
	for !atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		yieldFn()
	}
}

// TryToAcquire attempts to acquire the lock and returns true if the lock
// could be acquired or false otherwise.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Release relinquishes a held lock. Calling Release while the lock is free
// has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

// IrqSpinlock is a spinlock that masks maskable interrupts for as long as it
// is held. It protects state that is mutated from both normal context and
// interrupt handlers: without the masking, an interrupt arriving while the
// lock is held in normal context would deadlock the handler against the
// interrupted owner on a single CPU.
type IrqSpinlock struct {
	lock Spinlock

	// Interrupt flag state recorded by Acquire and replayed by Release.
	// Only valid while the lock is held.
	wasEnabled bool
}

// Acquire masks interrupts, records their previous state and then obtains
// the lock.
func (l *IrqSpinlock) Acquire() {
	wasEnabled := irqDisableFn()
	l.lock.Acquire()
	l.wasEnabled = wasEnabled
}

// Release relinquishes the lock and restores the interrupt flag state that
// was in effect before the matching Acquire call.
func (l *IrqSpinlock) Release() {
	wasEnabled := l.wasEnabled
	l.lock.Release()
	irqRestoreFn(wasEnabled)
}

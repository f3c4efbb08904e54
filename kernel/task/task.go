// Package task implements the kernel's cooperative multitasking primitives:
// poll-based futures, wakers and a single-context executor.
//
// There is no preemption. A future advances only when the executor polls it
// and suspends by returning Pending; it is polled again after its Waker has
// been invoked, typically from an interrupt handler.
package task

import (
	"sync/atomic"

	kernelsync "github.com/Gabriel-Alves-Cunha/blog-os/kernel/sync"
)

// Poll is the result of a single attempt to advance a future.
type Poll uint8

const (
	// Pending indicates the future cannot progress until its waker fires.
	Pending Poll = iota

	// Ready indicates the future has run to completion.
	Ready
)

// ID uniquely identifies a spawned task. IDs are assigned monotonically by
// the executor and are never reused, so a stale wake for a completed task
// can be detected and discarded.
type ID uint64

// Future is a unit of asynchronous work driven by an executor. Poll must
// never block: it either completes some work and returns Ready, or arranges
// for w to be invoked when progress becomes possible and returns Pending.
//
// Returning Pending without registering w somewhere means the task is never
// polled again.
type Future interface {
	Poll(w *Waker) Poll
}

// Waker marks its task as ready to be polled again. It is safe to invoke
// from interrupt context: waking neither blocks nor allocates. Invoking a
// Waker multiple times before the task is next polled coalesces into a
// single re-poll.
type Waker struct {
	id    ID
	ready *kernelsync.Ring

	// queued is 1 while the task ID sits in the ready queue.
	queued uint32
}

// Wake enqueues the owning task for another poll. Waking an already queued
// task is a no-op.
func (w *Waker) Wake() {
	if !atomic.CompareAndSwapUint32(&w.queued, 0, 1) {
		return
	}

	if !w.ready.Push(uint64(w.id)) {
		panicFn(errReadyQueueFull)
	}
}

// beginPoll transitions the waker out of the queued state. It is invoked by
// the executor right before polling so that a wake arriving mid-poll queues
// the task again instead of being lost.
func (w *Waker) beginPoll() {
	atomic.StoreUint32(&w.queued, 0)
}

// WakerSlot is a single-slot waker register shared between an asynchronous
// event source and its consumer. The zero value is ready for use, which
// matters because the slot must exist before interrupts are enabled.
//
// Registering a waker replaces any previous one; firing the slot consumes
// the registered waker. Firing an empty slot is a no-op.
type WakerSlot struct {
	w atomic.Pointer[Waker]
}

// Register stores w as the waker to be fired on the next Wake call,
// replacing any previously registered waker.
func (s *WakerSlot) Register(w *Waker) {
	s.w.Store(w)
}

// Wake consumes and fires the registered waker, if any.
func (s *WakerSlot) Wake() {
	if w := s.w.Swap(nil); w != nil {
		w.Wake()
	}
}

// Clear empties the slot without firing it. Consumers call it after finding
// data on the re-check pop so a stale wake is not delivered later.
func (s *WakerSlot) Clear() {
	s.w.Store(nil)
}

// Package kbd bridges keyboard interrupts into the cooperative task system.
// Interrupt handlers push raw scancodes into a fixed, lock-free queue; a
// poll-based stream yields them to a consumer task which is woken through a
// single-slot waker register.
package kbd

import (
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
	kernelsync "github.com/Gabriel-Alves-Cunha/blog-os/kernel/sync"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/task"
)

// scancodeQueueCap bounds the number of scancodes that can be buffered
// between scheduler passes. Beyond it the newest input is dropped: stale
// keystrokes are worth less than fresh ones.
const scancodeQueueCap = 128

var (
	errQueueTwice  = &kernel.Error{Module: "kbd", Message: "scancode queue constructed twice"}
	errQueueUninit = &kernel.Error{Module: "kbd", Message: "scancode queue not initialized"}

	panicFn = kfmt.Panic

	// scancodeQueue is constructed exactly once by NewScancodeStream, in
	// normal context, before keyboard interrupts are unmasked.
	scancodeQueue *kernelsync.Ring

	// scancodeWaker notifies the task suspended on the stream. The zero
	// value is usable, so the slot exists before any interrupt can fire.
	scancodeWaker task.WakerSlot
)

// PutScancode hands one raw scancode from the keyboard interrupt handler to
// the consumer task. It never blocks and never allocates; when the queue is
// full or not yet constructed the scancode is dropped with a best-effort
// diagnostic. The diagnostic path writes through the console lock, which is
// never held while interrupts are enabled, so it cannot deadlock here.
func PutScancode(sc uint8) {
	if scancodeQueue == nil {
		kfmt.Printf("WARNING: scancode queue uninitialized; dropping keyboard input\n")
		return
	}

	if !scancodeQueue.Push(uint64(sc)) {
		kfmt.Printf("WARNING: scancode queue full; dropping keyboard input\n")
		return
	}

	// Wake unconditionally; waking an empty slot is a no-op.
	scancodeWaker.Wake()
}

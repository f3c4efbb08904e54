package kbd

import (
	kernelsync "github.com/Gabriel-Alves-Cunha/blog-os/kernel/sync"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/task"
)

// ScancodeStream exposes the queued scancodes as a logically infinite
// poll-based sequence. Use NewScancodeStream to construct it; the zero value
// polls an uninitialized queue, which is fatal.
type ScancodeStream struct {
	_ struct{}
}

// NewScancodeStream constructs the package's scancode queue and returns the
// stream reading from it. The queue is a process-wide singleton wired to the
// interrupt handler: constructing it twice is a programming error and halts
// the kernel. Must be called from normal context before keyboard interrupts
// are unmasked.
func NewScancodeStream() *ScancodeStream {
	if scancodeQueue != nil {
		panicFn(errQueueTwice)
	}

	scancodeQueue = kernelsync.NewRing(scancodeQueueCap)
	return &ScancodeStream{}
}

// PollNext yields the oldest queued scancode, or task.Pending when the queue
// is drained. In the latter case the supplied waker has been registered and
// fires as soon as new input arrives.
//
// The pop after registering closes the race with an interrupt that pushed
// between the first pop and the registration; without it that wake would be
// consumed by nobody and the task could hang forever.
func (s *ScancodeStream) PollNext(w *task.Waker) (uint8, task.Poll) {
	if scancodeQueue == nil {
		panicFn(errQueueUninit)
		return 0, task.Pending
	}

	// Fast path: skip waker registration when data is already available.
	if v, ok := scancodeQueue.Pop(); ok {
		return uint8(v), task.Ready
	}

	scancodeWaker.Register(w)

	if v, ok := scancodeQueue.Pop(); ok {
		scancodeWaker.Clear()
		return uint8(v), task.Ready
	}

	return 0, task.Pending
}

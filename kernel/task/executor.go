package task

import (
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/cpu"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/irq"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
	kernelsync "github.com/Gabriel-Alves-Cunha/blog-os/kernel/sync"
)

// readyQueueCap bounds the number of distinct tasks that can be queued for
// polling at the same time. Wakes are deduplicated per task so the queue can
// only overflow when more than readyQueueCap tasks are live and woken.
const readyQueueCap = 128

var (
	errReadyQueueFull = &kernel.Error{Module: "task", Message: "ready queue full"}

	// Hardware touchpoints, swappable by tests.
	panicFn         = kfmt.Panic
	irqDisableFn    = irq.Disable
	irqRestoreFn    = irq.Restore
	enableAndHaltFn = cpu.EnableInterruptsAndHalt
)

// Executor drives spawned futures to completion on a single execution
// context. Tasks that report Pending are parked until their Waker fires;
// when nothing is runnable the executor halts the CPU until the next
// interrupt instead of spinning.
//
// The executor itself is not safe for concurrent use; Spawn and Run must be
// called from normal kernel context. Only Waker.Wake may be invoked
// concurrently (from interrupt handlers).
type Executor struct {
	tasks  map[ID]Future
	wakers map[ID]*Waker
	ready  *kernelsync.Ring
	nextID ID
}

// NewExecutor creates an empty executor.
func NewExecutor() *Executor {
	return &Executor{
		tasks:  make(map[ID]Future),
		wakers: make(map[ID]*Waker),
		ready:  kernelsync.NewRing(readyQueueCap),
	}
}

// Spawn registers f with the executor and queues it for an immediate first
// poll. The returned ID is unique for the lifetime of the executor;
// duplicate identities cannot occur since IDs are assigned from a
// monotonically increasing counter.
func (e *Executor) Spawn(f Future) ID {
	e.nextID++
	id := e.nextID

	w := &Waker{id: id, ready: e.ready, queued: 1}
	e.tasks[id] = f
	e.wakers[id] = w

	if !e.ready.Push(uint64(id)) {
		panicFn(errReadyQueueFull)
	}

	return id
}

// RunReadyTasks polls every queued task once. Tasks returning Ready are
// removed together with their waker; tasks returning Pending stay parked
// until woken. Wakes for IDs that completed in the meantime are discarded.
func (e *Executor) RunReadyTasks() {
	for {
		v, ok := e.ready.Pop()
		if !ok {
			return
		}

		id := ID(v)
		f, exists := e.tasks[id]
		if !exists {
			continue
		}

		w := e.wakers[id]
		w.beginPoll()

		if f.Poll(w) == Ready {
			delete(e.tasks, id)
			delete(e.wakers, id)
		}
	}
}

// Run polls tasks forever, parking the CPU whenever the ready queue runs
// dry. It never returns.
func (e *Executor) Run() {
	for {
		e.RunReadyTasks()
		e.sleepIfIdle()
	}
}

// sleepIfIdle halts the CPU until the next interrupt if no task became
// runnable since the last scheduler pass. The ready check runs with
// interrupts masked and the halt re-enables them atomically, so a wake
// firing in between cannot be lost: either Push lands before the check, or
// the interrupt that triggers it wakes the HLT.
func (e *Executor) sleepIfIdle() {
	wasEnabled := irqDisableFn()
	if e.ready.Len() == 0 {
		enableAndHaltFn()
		return
	}
	irqRestoreFn(wasEnabled)
}

// OutstandingTasks returns the number of spawned tasks that have not yet
// completed.
func (e *Executor) OutstandingTasks() int {
	return len(e.tasks)
}

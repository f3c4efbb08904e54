package sync

import "sync/atomic"

// Ring is a bounded FIFO queue of uint64 values designed for passing events
// out of interrupt handlers. Push and Pop never block and never allocate;
// all storage is reserved when the ring is created, which must happen
// outside interrupt context.
//
// The ring supports a single consumer. Producers are expected to be
// serialized externally; in this kernel the only producers are interrupt
// handlers, which cannot nest, and normal-context code running with
// interrupts masked.
type Ring struct {
	buf  []uint64
	mask uint64

	// head is the next slot to pop, tail the next slot to fill. Both only
	// ever increase; the slot index is the value masked by len(buf)-1.
	head uint64
	tail uint64
}

// NewRing creates a Ring that can hold capacity values. Capacity is rounded
// up to the next power of two.
func NewRing(capacity int) *Ring {
	size := 1
	for size < capacity {
		size <<= 1
	}

	return &Ring{
		buf:  make([]uint64, size),
		mask: uint64(size - 1),
	}
}

// Cap returns the number of values the ring can hold.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of values currently queued.
func (r *Ring) Len() int {
	return int(atomic.LoadUint64(&r.tail) - atomic.LoadUint64(&r.head))
}

// Push appends v to the ring and returns true, or returns false when the
// ring is full. The store to tail publishes the slot contents to the
// consumer; Go atomics are sequentially consistent so the slot write can not
// be reordered past it.
func (r *Ring) Push(v uint64) bool {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	if tail-head == uint64(len(r.buf)) {
		return false
	}

	r.buf[tail&r.mask] = v
	atomic.StoreUint64(&r.tail, tail+1)
	return true
}

// Pop removes and returns the oldest queued value. The second return value
// is false when the ring is empty.
func (r *Ring) Pop() (uint64, bool) {
	head := atomic.LoadUint64(&r.head)
	if head == atomic.LoadUint64(&r.tail) {
		return 0, false
	}

	v := r.buf[head&r.mask]
	atomic.StoreUint64(&r.head, head+1)
	return v, true
}

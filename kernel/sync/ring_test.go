package sync

import "testing"

func TestRingFIFOOrder(t *testing.T) {
	r := NewRing(8)

	for i := uint64(0); i < 8; i++ {
		if !r.Push(i) {
			t.Fatalf("expected push %d to succeed", i)
		}
	}

	if got := r.Len(); got != 8 {
		t.Fatalf("expected ring length to be 8; got %d", got)
	}

	for i := uint64(0); i < 8; i++ {
		v, ok := r.Pop()
		if !ok {
			t.Fatalf("expected pop %d to succeed", i)
		}
		if v != i {
			t.Fatalf("expected pop %d to return %d; got %d", i, i, v)
		}
	}

	if _, ok := r.Pop(); ok {
		t.Fatal("expected pop on an empty ring to fail")
	}
}

func TestRingCapacityRounding(t *testing.T) {
	specs := []struct {
		capacity int
		expCap   int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{128, 128},
	}

	for specIndex, spec := range specs {
		if got := NewRing(spec.capacity).Cap(); got != spec.expCap {
			t.Errorf("[spec %d] expected capacity %d; got %d", specIndex, spec.expCap, got)
		}
	}
}

func TestRingOverflowDropsNewest(t *testing.T) {
	r := NewRing(4)

	var accepted []uint64
	for i := uint64(0); i < 10; i++ {
		if r.Push(i) {
			accepted = append(accepted, i)
		}
	}

	if len(accepted) != 4 {
		t.Fatalf("expected 4 accepted pushes; got %d", len(accepted))
	}

	// The retained prefix must preserve FIFO order; the excess is dropped.
	for i := uint64(0); i < 4; i++ {
		v, ok := r.Pop()
		if !ok || v != i {
			t.Fatalf("expected pop %d to return %d; got %d (ok=%t)", i, i, v, ok)
		}
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)

	// Drive the indices past the buffer size several times to exercise the
	// masked wrap-around.
	var next, expect uint64
	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			if !r.Push(next) {
				t.Fatalf("push %d failed", next)
			}
			next++
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Pop()
			if !ok || v != expect {
				t.Fatalf("expected pop to return %d; got %d (ok=%t)", expect, v, ok)
			}
			expect++
		}
	}
}

package irq

import "testing"

func TestDisableRestore(t *testing.T) {
	defer func(origDisable, origEnable func(), origEnabled func() bool) {
		disableIntFn, enableIntFn, intEnabledFn = origDisable, origEnable, origEnabled
	}(disableIntFn, enableIntFn, intEnabledFn)

	var (
		flagState    = true
		disableCount int
		enableCount  int
	)

	disableIntFn = func() { disableCount++; flagState = false }
	enableIntFn = func() { enableCount++; flagState = true }
	intEnabledFn = func() bool { return flagState }

	// Outer critical section with interrupts initially enabled.
	outer := Disable()
	if !outer {
		t.Fatal("expected Disable to report interrupts as previously enabled")
	}

	// A nested section must observe interrupts as already masked and its
	// Restore must not unmask them.
	inner := Disable()
	if inner {
		t.Fatal("expected nested Disable to report interrupts as masked")
	}
	Restore(inner)
	if enableCount != 0 {
		t.Fatal("expected nested Restore to leave interrupts masked")
	}

	Restore(outer)
	if enableCount != 1 || !flagState {
		t.Fatalf("expected outer Restore to unmask interrupts; enableCount=%d", enableCount)
	}

	if disableCount != 2 {
		t.Fatalf("expected 2 calls to the disable hook; got %d", disableCount)
	}
}

func TestKeyboardDispatch(t *testing.T) {
	defer func(orig KeyboardHandler) { keyboardHandler = orig }(keyboardHandler)

	// Dispatching with no registered handler should be a no-op.
	keyboardHandler = nil
	DispatchKeyboard(0x9c)

	var got []uint8
	HandleKeyboard(func(sc uint8) { got = append(got, sc) })

	for _, sc := range []uint8{0x1e, 0x9e, 0x30} {
		DispatchKeyboard(sc)
	}

	if len(got) != 3 || got[0] != 0x1e || got[1] != 0x9e || got[2] != 0x30 {
		t.Fatalf("expected handler to receive scancodes in order; got %v", got)
	}
}

func TestKeyboardInterrupt(t *testing.T) {
	defer func(origHandler KeyboardHandler, origRead func(uint16) uint8, origWrite func(uint16, uint8)) {
		keyboardHandler, portReadByteFn, portWriteFn = origHandler, origRead, origWrite
	}(keyboardHandler, portReadByteFn, portWriteFn)

	var (
		dispatched []uint8
		acked      bool
	)

	portReadByteFn = func(port uint16) uint8 {
		if port != kbdDataPort {
			t.Fatalf("expected read from port 0x%x; got 0x%x", kbdDataPort, port)
		}
		return 0x39
	}
	portWriteFn = func(port uint16, val uint8) {
		if port != picCommandPort || val != picEOI {
			t.Fatalf("expected EOI write to the PIC; got 0x%x -> port 0x%x", val, port)
		}
		acked = true
	}
	HandleKeyboard(func(sc uint8) { dispatched = append(dispatched, sc) })

	KeyboardInterrupt()

	if len(dispatched) != 1 || dispatched[0] != 0x39 {
		t.Fatalf("expected scancode 0x39 to be dispatched; got %v", dispatched)
	}
	if !acked {
		t.Fatal("expected the interrupt to be acknowledged at the PIC")
	}
}

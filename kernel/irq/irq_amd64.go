// Package irq provides helpers for masking maskable interrupts around
// critical sections and the registration contract between the interrupt
// gate code and the keyboard driver.
package irq

import "github.com/Gabriel-Alves-Cunha/blog-os/kernel/cpu"

const (
	// kbdDataPort is the keyboard controller data port; reading it fetches
	// the pending scancode and allows the controller to latch the next one.
	kbdDataPort = 0x60

	// picCommandPort and picEOI acknowledge the interrupt at the primary
	// 8259 interrupt controller.
	picCommandPort = 0x20
	picEOI         = 0x20
)

var (
	// The cpu hooks are variables so tests can run irq code on a hosted
	// toolchain where CLI/STI and port I/O would fault.
	disableIntFn   = cpu.DisableInterrupts
	enableIntFn    = cpu.EnableInterrupts
	intEnabledFn   = cpu.InterruptsEnabled
	portReadByteFn = cpu.PortReadByte
	portWriteFn    = cpu.PortWriteByte

	keyboardHandler KeyboardHandler
)

// KeyboardHandler is the type of the function that the interrupt gate code
// invokes on each keyboard interrupt with the raw scancode read from the
// keyboard controller data port. Handlers execute in interrupt context and
// must complete in bounded time without allocating or blocking.
type KeyboardHandler func(scancode uint8)

// Disable masks maskable interrupts and returns the interrupt flag state
// that was in effect before the call. The returned value must be passed to
// Restore when the critical section ends.
func Disable() bool {
	enabled := intEnabledFn()
	disableIntFn()
	return enabled
}

// Restore re-enables maskable interrupts if they were enabled when the
// matching Disable call was made. Nested critical sections therefore keep
// interrupts masked until the outermost section exits.
func Restore(wasEnabled bool) {
	if wasEnabled {
		enableIntFn()
	}
}

// HandleKeyboard registers the handler that the interrupt gate invokes for
// keyboard interrupts. Installing the actual IDT vector is the job of the
// boot glue; this package only owns the dispatch contract.
func HandleKeyboard(handler KeyboardHandler) {
	keyboardHandler = handler
}

// DispatchKeyboard hands a scancode to the registered handler. Scancodes
// arriving before a handler is registered are dropped.
func DispatchKeyboard(scancode uint8) {
	if keyboardHandler != nil {
		keyboardHandler(scancode)
	}
}

// KeyboardInterrupt is the service routine the IDT gate jumps to for IRQ1.
// It reads the pending scancode from the controller, dispatches it and
// acknowledges the interrupt at the PIC. It runs with interrupts masked and
// performs no allocation.
func KeyboardInterrupt() {
	DispatchKeyboard(portReadByteFn(kbdDataPort))
	portWriteFn(picCommandPort, picEOI)
}

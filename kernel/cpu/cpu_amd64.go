// Package cpu provides access to the amd64 instructions that the kernel
// builds its interrupt masking and idle handling on top of.
package cpu

// EnableInterrupts sets RFLAGS.IF allowing the CPU to service maskable
// interrupts.
func EnableInterrupts()

// DisableInterrupts clears RFLAGS.IF preventing the CPU from servicing
// maskable interrupts.
func DisableInterrupts()

// InterruptsEnabled returns the current state of RFLAGS.IF.
func InterruptsEnabled() bool

// Halt suspends instruction execution until the next interrupt arrives. If
// interrupts are disabled when Halt is invoked the CPU never resumes.
func Halt()

// EnableInterruptsAndHalt executes STI immediately followed by HLT. STI only
// takes effect after the instruction that follows it which makes the pair
// atomic with respect to maskable interrupts: an interrupt arriving between
// the two instructions still wakes the HLT.
func EnableInterruptsAndHalt()

// PortWriteByte writes a uint8 value to the requested I/O port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested I/O port.
func PortReadByte(port uint16) uint8

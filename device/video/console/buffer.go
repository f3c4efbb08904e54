package console

import (
	"unsafe"
)

const (
	// Width and Height describe the 80x25 character grid of the text-mode
	// hardware. They are part of the hardware contract together with
	// FrameBufferAddr and must not change without retargeting the driver.
	Width  = 80
	Height = 25

	// FrameBufferAddr is the physical address the text-mode framebuffer is
	// mapped to. The address is identity-mapped for the whole kernel
	// lifetime.
	FrameBufferAddr uintptr = 0xb8000
)

// mapFrameBufferFn is swapped by tests to point the driver at a plain
// in-memory slice instead of the hardware framebuffer.
var mapFrameBufferFn = mapFrameBuffer

// frameBuffer is the character-cell grid consumed by the display hardware.
// Each cell packs the attribute byte above the character byte, which on
// little-endian amd64 yields the char-then-attribute byte order the
// hardware expects.
type frameBuffer []uint16

// mapFrameBuffer overlays a frameBuffer on the memory region starting at
// physAddr.
func mapFrameBuffer(physAddr uintptr) frameBuffer {
	return unsafe.Slice((*uint16)(unsafe.Pointer(physAddr)), Width*Height)
}

// makeCell packs a character byte and an attribute into a framebuffer cell.
func makeCell(ch byte, attr ColorAttr) uint16 {
	return uint16(attr)<<8 | uint16(ch)
}

// write stores a cell value. The slice is mapped over a fixed hardware
// address via unsafe.Slice, so the compiler cannot prove the stores
// unobserved and must emit them: the framebuffer is read by the display
// hardware, not by any code the compiler can see.
func (fb frameBuffer) write(row, col int, v uint16) {
	fb[row*Width+col] = v
}

// read loads a cell value with the same visibility guarantees as write.
func (fb frameBuffer) read(row, col int) uint16 {
	return fb[row*Width+col]
}

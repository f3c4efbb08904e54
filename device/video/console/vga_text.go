package console

import (
	"io"

	"github.com/Gabriel-Alves-Cunha/blog-os/device"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
	kernelsync "github.com/Gabriel-Alves-Cunha/blog-os/kernel/sync"
)

var (
	// The lock hooks are swapped by tests; the real IrqSpinlock would try
	// to execute CLI on the host CPU.
	lockFn   = (*kernelsync.IrqSpinlock).Acquire
	unlockFn = (*kernelsync.IrqSpinlock).Release
)

// VgaText implements an 80x25 text-mode console driver on top of the
// memory-mapped framebuffer at FrameBufferAddr.
//
// All exported output methods serialize access to the underlying Writer
// through a lock that masks maskable interrupts for the duration of the
// critical section. An interrupt handler that emits a diagnostic can
// therefore never find the lock held: whoever holds it runs with interrupts
// masked until it is released.
type VgaText struct {
	fbPhysAddr uintptr

	mu     kernelsync.IrqSpinlock
	writer Writer
}

// NewVgaText creates a text-mode console driver with its framebuffer mapped
// to fbPhysAddr. The returned driver is inert until DriverInit runs.
func NewVgaText(fbPhysAddr uintptr) *VgaText {
	return &VgaText{fbPhysAddr: fbPhysAddr}
}

// DriverName returns the name of this driver.
func (c *VgaText) DriverName() string {
	return "vga_text"
}

// DriverVersion returns the version of this driver.
func (c *VgaText) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit maps the framebuffer and clears the screen. It must run in
// normal context before any output is attempted.
func (c *VgaText) DriverInit(w io.Writer) *kernel.Error {
	c.writer.fb = mapFrameBufferFn(c.fbPhysAddr)
	c.writer.SetColorAttr(NewColorAttr(Yellow, Black))
	c.writer.Clear()

	kfmt.Fprintf(w, "mapped %dx%d text buffer at 0x%x\n", Width, Height, uint64(c.fbPhysAddr))
	return nil
}

// Write implements io.Writer. Writes to the display cannot fail.
func (c *VgaText) Write(p []byte) (int, error) {
	lockFn(&c.mu)
	n, err := c.writer.Write(p)
	unlockFn(&c.mu)
	return n, err
}

// WriteByte implements io.ByteWriter.
func (c *VgaText) WriteByte(b byte) error {
	lockFn(&c.mu)
	err := c.writer.WriteByte(b)
	unlockFn(&c.mu)
	return err
}

// Clear blanks the screen and homes the cursor.
func (c *VgaText) Clear() {
	lockFn(&c.mu)
	c.writer.Clear()
	unlockFn(&c.mu)
}

// SetColorAttr selects the attribute applied to subsequent output.
func (c *VgaText) SetColorAttr(attr ColorAttr) {
	lockFn(&c.mu)
	c.writer.SetColorAttr(attr)
	unlockFn(&c.mu)
}

// probeForVgaText returns a driver for the text-mode framebuffer. The
// reference hardware always has one.
func probeForVgaText() device.Driver {
	return NewVgaText(FrameBufferAddr)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{Order: 0, Probe: probeForVgaText})
}

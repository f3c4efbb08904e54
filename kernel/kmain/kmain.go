// Package kmain contains the kernel entry point invoked by the rt0 code
// after the GDT, IDT and Go runtime bootstrap are in place.
package kmain

import (
	"github.com/Gabriel-Alves-Cunha/blog-os/device/input/ps2"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/hal"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/irq"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kbd"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/task"
)

// Kmain is invoked by the boot glue with interrupts still masked. It brings
// up the console, wires the keyboard interrupt into the scancode queue and
// hands the CPU to the executor. Kmain never returns.
//
//go:noinline
func Kmain() {
	hal.DetectHardware()
	kfmt.Printf("blog-os booting\n")

	// The stream (and with it the scancode queue) must exist before the
	// keyboard interrupt is unmasked.
	stream := kbd.NewScancodeStream()
	irq.HandleKeyboard(kbd.PutScancode)

	executor := task.NewExecutor()
	executor.Spawn(kbd.PrintKeypresses(stream, ps2.NewDecoder()))
	executor.Run()
}

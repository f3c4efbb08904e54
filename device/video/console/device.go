package console

import (
	"io"

	"github.com/Gabriel-Alves-Cunha/blog-os/device"
)

// Device is implemented by console drivers that can serve as the kernel's
// text output sink.
type Device interface {
	device.Driver
	io.Writer
	io.ByteWriter

	// Clear blanks the screen and homes the cursor.
	Clear()

	// SetColorAttr selects the attribute applied to subsequent output.
	SetColorAttr(ColorAttr)
}

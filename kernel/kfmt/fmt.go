// Package kfmt implements a minimal, allocation-free replacement for the fmt
// package that is safe to call from interrupt context and before the Go
// allocator is available.
package kfmt

import (
	"io"
	"unsafe"
)

// maxNumBufSize defines the buffer size for formatting numbers. It is large
// enough for a 64-bit value in base 8 plus a sign.
const maxNumBufSize = 24

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	numBuf [maxNumBufSize]byte

	// singleByte is a shared one-byte buffer. Writing format bytes through
	// it one at a time avoids the allocation that slicing the format string
	// would trigger.
	singleByte = []byte{0}

	// runeBuf backs the %c verb.
	runeBuf [4]byte

	// earlyOutput buffers Printf output produced before a console becomes
	// available as the output sink.
	earlyOutput ringBuffer

	// outputSink is where Printf sends its output. While nil, output is
	// redirected to earlyOutput.
	outputSink io.Writer
)

// SetOutputSink redirects the output of Printf to w and drains any output
// accumulated before the sink was installed into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyOutput)
	}
}

// GetOutputSink returns the io.Writer that currently receives Printf output.
// Before a console takes over as the sink this is the early ring buffer, so
// callers obtained this way never write to a nil sink and their output is
// drained once SetOutputSink runs.
func GetOutputSink() io.Writer {
	if outputSink == nil {
		return &earlyOutput
	}
	return outputSink
}

// Printf writes the formatted output for the supplied format and args to the
// active output sink. It supports a subset of the fmt verbs:
//
//	%s  string or []byte
//	%c  rune, printed as UTF-8
//	%d  integer, base 10
//	%x  integer, base 16 (lower-case)
//	%o  integer, base 8
//	%t  bool
//
// An optional decimal width before the verb left-pads the value: with spaces
// for %s and %d, with zeroes for %x and %o.
//
// Printf never allocates so it can be used before the Go runtime is fully
// bootstrapped and from within interrupt handlers.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but writes the formatted output to the
// supplied io.Writer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		nextArg int
		i       int
	)

	for i < len(format) {
		ch := format[i]
		if ch != '%' {
			emitByte(w, ch)
			i++
			continue
		}

		// Scan the optional width and the verb.
		i++
		width := 0
		for ; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i >= len(format) {
			doWrite(w, errNoVerb)
			break
		}

		verb := format[i]
		i++

		if verb == '%' {
			emitByte(w, '%')
			continue
		}

		if nextArg >= len(args) {
			doWrite(w, errMissingArg)
			continue
		}
		arg := args[nextArg]
		nextArg++

		switch verb {
		case 'o':
			fmtInt(w, arg, 8, width)
		case 'd':
			fmtInt(w, arg, 10, width)
		case 'x':
			fmtInt(w, arg, 16, width)
		case 's':
			fmtString(w, arg, width)
		case 'c':
			fmtRune(w, arg)
		case 't':
			fmtBool(w, arg)
		default:
			doWrite(w, errNoVerb)
		}
	}

	// Flag left-over args.
	for ; nextArg < len(args); nextArg++ {
		doWrite(w, errExtraArg)
	}
}

// fmtBool prints a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	if b {
		doWrite(w, trueValue)
	} else {
		doWrite(w, falseValue)
	}
}

// fmtRune prints the UTF-8 encoding of the supplied rune or byte value.
func fmtRune(w io.Writer, v interface{}) {
	var r rune
	switch cv := v.(type) {
	case rune:
		r = cv
	case byte:
		r = rune(cv)
	default:
		doWrite(w, errWrongArgType)
		return
	}

	// Inline UTF-8 encoding; utf8.EncodeRune would force r to escape.
	switch {
	case r < 0x80:
		runeBuf[0] = byte(r)
		doWrite(w, runeBuf[:1])
	case r < 0x800:
		runeBuf[0] = 0xc0 | byte(r>>6)
		runeBuf[1] = 0x80 | byte(r)&0x3f
		doWrite(w, runeBuf[:2])
	case r < 0x10000:
		runeBuf[0] = 0xe0 | byte(r>>12)
		runeBuf[1] = 0x80 | byte(r>>6)&0x3f
		runeBuf[2] = 0x80 | byte(r)&0x3f
		doWrite(w, runeBuf[:3])
	default:
		runeBuf[0] = 0xf0 | byte(r>>18)
		runeBuf[1] = 0x80 | byte(r>>12)&0x3f
		runeBuf[2] = 0x80 | byte(r>>6)&0x3f
		runeBuf[3] = 0x80 | byte(r)&0x3f
		doWrite(w, runeBuf[:4])
	}
}

// fmtString prints a formatted version of string or []byte value v applying
// the requested left-padding.
func fmtString(w io.Writer, v interface{}, width int) {
	switch sv := v.(type) {
	case string:
		for i := width - len(sv); i > 0; i-- {
			emitByte(w, ' ')
		}
		// Converting the string to a []byte would allocate; emit the bytes
		// one at a time instead.
		for i := 0; i < len(sv); i++ {
			emitByte(w, sv[i])
		}
	case []byte:
		for i := width - len(sv); i > 0; i-- {
			emitByte(w, ' ')
		}
		doWrite(w, sv)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtInt prints a formatted version of v in the requested base applying the
// requested padding: spaces for base 10, zeroes for bases 8 and 16. All
// built-in signed and unsigned integer types are supported.
func fmtInt(w io.Writer, v interface{}, base, width int) {
	var (
		uval     uint64
		negative bool
	)

	switch iv := v.(type) {
	case uint8:
		uval = uint64(iv)
	case uint16:
		uval = uint64(iv)
	case uint32:
		uval = uint64(iv)
	case uint64:
		uval = iv
	case uint:
		uval = uint64(iv)
	case uintptr:
		uval = uint64(iv)
	case int8:
		negative = iv < 0
		uval = abs64(int64(iv))
	case int16:
		negative = iv < 0
		uval = abs64(int64(iv))
	case int32:
		negative = iv < 0
		uval = abs64(int64(iv))
	case int64:
		negative = iv < 0
		uval = abs64(iv)
	case int:
		negative = iv < 0
		uval = abs64(int64(iv))
	default:
		doWrite(w, errWrongArgType)
		return
	}

	padCh := byte('0')
	if base == 10 {
		padCh = ' '
	}
	if width >= maxNumBufSize {
		width = maxNumBufSize - 1
	}

	// Emit digits least-significant first.
	n := 0
	for {
		digit := byte(uval % uint64(base))
		if digit < 10 {
			numBuf[n] = digit + '0'
		} else {
			numBuf[n] = digit - 10 + 'a'
		}
		n++

		uval /= uint64(base)
		if uval == 0 {
			break
		}
	}

	// A zero-padded negative value carries its sign before the padding; a
	// space-padded one directly before the first digit.
	if negative && padCh == '0' {
		for ; n < width-1; n++ {
			numBuf[n] = padCh
		}
		numBuf[n] = '-'
		n++
	} else {
		if negative {
			numBuf[n] = '-'
			n++
		}
		for ; n < width; n++ {
			numBuf[n] = padCh
		}
	}

	// Reverse in place and emit.
	for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
		numBuf[l], numBuf[r] = numBuf[r], numBuf[l]
	}

	doWrite(w, numBuf[:n])
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// emitByte writes a single byte through the shared singleByte buffer.
func emitByte(w io.Writer, b byte) {
	singleByte[0] = b
	doWrite(w, singleByte)
}

// doWrite uses the runtime noescape trick to hide p from the compiler's
// escape analysis. Without it the compiler cannot prove that p does not
// escape through the io.Writer and every Printf call site would allocate,
// crashing the kernel when invoked before the allocator is initialized.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyOutput.Write(p)
	}
}

// noEscape hides a pointer from escape analysis. This function is copied
// over from runtime/stubs.go.
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

package kfmt

import "io"

// PrefixWriter is an io.Writer that forwards writes to another io.Writer
// injecting a prefix at the beginning of each line.
type PrefixWriter struct {
	// Sink receives all writes.
	Sink io.Writer

	// Prefix is injected at the beginning of each line. It is not counted
	// in the byte totals returned by Write.
	Prefix []byte

	midLine bool
}

// Write writes len(p) bytes from p to the sink injecting the configured
// prefix after each newline.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for start, i := 0, 0; i < len(p); i++ {
		if !w.midLine {
			w.Sink.Write(w.Prefix)
			w.midLine = true
		}

		if p[i] != '\n' {
			continue
		}

		n, err := w.Sink.Write(p[start : i+1])
		written += n
		if err != nil {
			return written, err
		}

		start = i + 1
		w.midLine = false

		if start == len(p) {
			return written, nil
		}
	}

	// Trailing bytes without a newline.
	if written < len(p) {
		n, err := w.Sink.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

package kfmt

import "io"

// earlyBufferSize defines the size of the ring buffer that stores Printf
// output generated before an output sink is installed. It is large enough to
// hold a full 80x25 text screen and must be a power of two.
const earlyBufferSize = 2048

// ringBuffer is a byte ring that implements io.Reader and io.Writer. Writes
// that exceed the available space overwrite the oldest buffered data so the
// most recent output always survives until a sink appears.
type ringBuffer struct {
	buf  [earlyBufferSize]byte
	rPos int
	wPos int
	used int
}

// Write appends the contents of p to the ring, evicting the oldest bytes
// when the ring is full. It always reports len(p) bytes written.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buf[rb.wPos] = b
		rb.wPos = (rb.wPos + 1) & (earlyBufferSize - 1)

		if rb.used < earlyBufferSize {
			rb.used++
		} else {
			// Evicted a byte; the read position follows the write position.
			rb.rPos = rb.wPos
		}
	}

	return len(p), nil
}

// Read copies up to len(p) buffered bytes into p and returns the number of
// bytes copied. When the ring is empty it returns io.EOF.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.used == 0 {
		return 0, io.EOF
	}

	var n int
	for ; n < len(p) && rb.used > 0; n++ {
		p[n] = rb.buf[rb.rPos]
		rb.rPos = (rb.rPos + 1) & (earlyBufferSize - 1)
		rb.used--
	}

	return n, nil
}

package kbd

import (
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/task"
)

// Decoder is the contract with the external scancode decoder: it consumes
// one raw scancode at a time and reports a decoded character whenever a
// sequence completes a printable key press. Its internal state machine is
// none of this package's business.
type Decoder interface {
	WriteByte(scancode uint8) (rune, bool)
}

// keyPrinter drains the scancode stream through a decoder and prints every
// decoded character. It suspends whenever the stream runs dry and never
// completes.
type keyPrinter struct {
	stream *ScancodeStream
	dec    Decoder
}

// PrintKeypresses returns the task that echoes decoded keyboard input to the
// active output sink.
func PrintKeypresses(stream *ScancodeStream, dec Decoder) task.Future {
	return &keyPrinter{stream: stream, dec: dec}
}

// Poll implements task.Future.
func (k *keyPrinter) Poll(w *task.Waker) task.Poll {
	for {
		sc, st := k.stream.PollNext(w)
		if st != task.Ready {
			return task.Pending
		}

		if ch, ok := k.dec.WriteByte(sc); ok {
			kfmt.Printf("%c", ch)
		}
	}
}

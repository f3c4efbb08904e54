// Package ps2 implements a minimal decoder for scancode set 1 as emitted by
// a PS/2 keyboard controller. It turns raw make/break byte sequences into
// printable characters, tracking shift state and skipping extended-key
// sequences.
package ps2

// Decoder is the stateful byte-at-a-time scancode decoder. The zero value
// is ready for use.
type Decoder struct {
	shift    bool
	extended bool
}

// NewDecoder returns a decoder with no pending state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

const (
	extendedPrefix = 0xe0
	breakBit       = 0x80

	scanLeftShift  = 0x2a
	scanRightShift = 0x36
)

// WriteByte feeds one raw scancode into the decoder. It returns the decoded
// character and true when the byte completes a printable key press; control
// keys, key releases and unknown codes return false. Enter, tab and
// backspace decode to '\n', '\t' and '\b'.
func (d *Decoder) WriteByte(scancode uint8) (rune, bool) {
	if scancode == extendedPrefix {
		d.extended = true
		return 0, false
	}

	if d.extended {
		// Extended keys (arrows, keypad enter, ...) carry no printable
		// character in this decoder.
		d.extended = false
		return 0, false
	}

	released := scancode&breakBit != 0
	code := scancode &^ uint8(breakBit)

	if code == scanLeftShift || code == scanRightShift {
		d.shift = !released
		return 0, false
	}

	if released || code >= 0x80 {
		return 0, false
	}

	var ch byte
	if d.shift {
		ch = shiftKeymap[code]
	} else {
		ch = plainKeymap[code]
	}

	if ch == 0 {
		return 0, false
	}
	return rune(ch), true
}

package console

// replacementChar is the code page 437 glyph (■) substituted for bytes the
// text-mode character set cannot represent.
const replacementChar = 0xfe

// Writer renders a byte stream onto the framebuffer. Output always targets
// the bottom row; completed lines scroll upwards and the oldest line falls
// off the top of the screen.
//
// Writer performs no locking of its own. The exported driver entry points
// serialize access and mask interrupts around it.
type Writer struct {
	column int
	attr   ColorAttr
	fb     frameBuffer
}

// NewWriter returns a Writer rendering to the framebuffer mapped at
// physAddr using the default yellow-on-black attribute. Ownership of the
// mapped region is exclusive to the returned Writer.
func NewWriter(physAddr uintptr) *Writer {
	w := &Writer{fb: mapFrameBufferFn(physAddr)}
	w.SetColorAttr(NewColorAttr(Yellow, Black))
	return w
}

// ColorAttr returns the attribute applied to subsequently written bytes.
func (w *Writer) ColorAttr() ColorAttr {
	return w.attr
}

// SetColorAttr changes the attribute applied to subsequently written bytes.
func (w *Writer) SetColorAttr(attr ColorAttr) {
	w.attr = attr
}

// Column returns the current cursor column on the bottom row.
func (w *Writer) Column() int {
	return w.column
}

// PutByte renders one byte at the current column of the bottom row using the
// active attribute, wrapping to a fresh line when the row is full. A newline
// byte scrolls immediately.
func (w *Writer) PutByte(b byte) {
	if b == '\n' {
		w.newLine()
		return
	}

	if w.column >= Width {
		w.newLine()
	}

	w.fb.write(Height-1, w.column, makeCell(b, w.attr))
	w.column++
}

// PutString renders each byte of s through PutByte. Bytes outside printable
// ASCII (0x20-0x7e) and newline are substituted with the replacement glyph;
// the hardware character set does not cover arbitrary encodings.
func (w *Writer) PutString(s string) {
	for i := 0; i < len(s); i++ {
		w.putFiltered(s[i])
	}
}

func (w *Writer) putFiltered(b byte) {
	if (b >= 0x20 && b <= 0x7e) || b == '\n' {
		w.PutByte(b)
	} else {
		w.PutByte(replacementChar)
	}
}

// Write implements io.Writer with the same byte filtering as PutString.
// Writes to the display cannot fail.
func (w *Writer) Write(p []byte) (int, error) {
	for _, b := range p {
		w.putFiltered(b)
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.putFiltered(b)
	return nil
}

// newLine scrolls every row up by one position, clears the freed bottom row
// to blanks in the active attribute and resets the column. The copy walks
// the whole grid; output rates are bounded by the interrupt rate so the
// O(rows*cols) cost is acceptable.
func (w *Writer) newLine() {
	for row := 1; row < Height; row++ {
		for col := 0; col < Width; col++ {
			w.fb.write(row-1, col, w.fb.read(row, col))
		}
	}

	w.clearRow(Height - 1)
	w.column = 0
}

// clearRow overwrites a row with blank cells carrying the active attribute.
func (w *Writer) clearRow(row int) {
	blank := makeCell(' ', w.attr)
	for col := 0; col < Width; col++ {
		w.fb.write(row, col, blank)
	}
}

// Clear blanks the whole screen and homes the cursor.
func (w *Writer) Clear() {
	for row := 0; row < Height; row++ {
		w.clearRow(row)
	}
	w.column = 0
}

package console

// Color describes one entry of the fixed 16-color text-mode palette.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

// ColorAttr packs a foreground and a background palette index into the
// attribute byte layout expected by the text-mode hardware: bits 0-3 hold
// the foreground, bits 4-7 the background.
type ColorAttr uint8

// NewColorAttr combines a foreground and a background color into an
// attribute byte.
func NewColorAttr(fg, bg Color) ColorAttr {
	return ColorAttr(uint8(bg)<<4 | uint8(fg)&0x0f)
}

// Foreground returns the foreground palette index encoded in the attribute.
func (a ColorAttr) Foreground() Color {
	return Color(a & 0x0f)
}

// Background returns the background palette index encoded in the attribute.
func (a ColorAttr) Background() Color {
	return Color(a >> 4)
}

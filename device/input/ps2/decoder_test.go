package ps2

import "testing"

// decodeAll feeds a scancode sequence to a fresh decoder and collects the
// decoded characters.
func decodeAll(scancodes []uint8) string {
	var (
		d   Decoder
		out []rune
	)
	for _, sc := range scancodes {
		if ch, ok := d.WriteByte(sc); ok {
			out = append(out, ch)
		}
	}
	return string(out)
}

func TestDecodeSequences(t *testing.T) {
	specs := []struct {
		descr     string
		scancodes []uint8
		exp       string
	}{
		{
			"lower-case letters with releases interleaved",
			[]uint8{0x23, 0xa3, 0x17, 0x97},
			"hi",
		},
		{
			"shift produces upper-case and symbols",
			[]uint8{0x2a, 0x23, 0xa3, 0xaa, 0x17, 0x97, 0x2a, 0x02, 0x82, 0xaa},
			"Hi!",
		},
		{
			"right shift behaves like left shift",
			[]uint8{0x36, 0x10, 0x90, 0xb6, 0x10, 0x90},
			"Qq",
		},
		{
			"enter space tab and backspace decode to control characters",
			[]uint8{0x39, 0xb9, 0x0f, 0x8f, 0x0e, 0x8e, 0x1c, 0x9c},
			" \t\b\n",
		},
		{
			"digits",
			[]uint8{0x02, 0x82, 0x0b, 0x8b},
			"10",
		},
		{
			"extended sequences are skipped",
			[]uint8{0xe0, 0x48, 0xe0, 0xc8, 0x1e, 0x9e},
			"a",
		},
		{
			"unknown make codes are ignored",
			[]uint8{0x01, 0x81, 0x3b, 0xbb, 0x1f, 0x9f},
			"s",
		},
	}

	for _, spec := range specs {
		if got := decodeAll(spec.scancodes); got != spec.exp {
			t.Errorf("%s: expected %q; got %q", spec.descr, spec.exp, got)
		}
	}
}

func TestShiftStateSurvivesOtherKeys(t *testing.T) {
	var d Decoder

	d.WriteByte(0x2a) // shift down
	if ch, ok := d.WriteByte(0x1e); !ok || ch != 'A' {
		t.Fatalf("expected 'A' while shift is held; got %q (ok=%t)", ch, ok)
	}
	d.WriteByte(0x9e) // 'a' released, shift still down
	if ch, ok := d.WriteByte(0x30); !ok || ch != 'B' {
		t.Fatalf("expected 'B' while shift is held; got %q (ok=%t)", ch, ok)
	}
	d.WriteByte(0xaa) // shift released
	if ch, ok := d.WriteByte(0x2e); !ok || ch != 'c' {
		t.Fatalf("expected 'c' after shift release; got %q (ok=%t)", ch, ok)
	}
}

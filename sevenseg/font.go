package sevenseg

// Font maps characters to segment patterns.
//
// The bit layout follows the MAX7219 no-decode data format:
//
//	bit:     7  6 5 4 3 2 1 0
//	segment: DP A B C D E F G
//
//	  A
//	F   B
//	  G
//	E   C
//	  D    DP
//
// Glyph reports whether the font covers the rune; when it does not, it
// must still return a blank pattern so lookups are total.
type Font interface {
	Glyph(r rune) (byte, bool)
}

// MapFont is a Font backed by a rune to segment pattern map.
type MapFont struct {
	codes map[rune]byte
}

// NewMapFont creates a font from a segment pattern map. The map is
// used as-is and must not be mutated afterwards.
func NewMapFont(codes map[rune]byte) *MapFont {
	return &MapFont{codes: codes}
}

// Glyph implements Font.
func (f *MapFont) Glyph(r rune) (byte, bool) {
	code, ok := f.codes[r]
	return code, ok
}

// StandardFont covers the characters that render legibly on seven
// segments: digits, the hex letters and a handful of others.
var StandardFont Font = NewMapFont(map[rune]byte{
	'0': 0b01111110,
	'1': 0b00110000,
	'2': 0b01101101,
	'3': 0b01111001,
	'4': 0b00110011,
	'5': 0b01011011,
	'6': 0b01011111,
	'7': 0b01110000,
	'8': 0b01111111,
	'9': 0b01111011,
	'A': 0b01110111,
	'B': 0b00011111, // rendered as lowercase b
	'C': 0b01001110,
	'D': 0b00111101, // rendered as lowercase d
	'E': 0b01001111,
	'F': 0b01000111,
	'H': 0b00110111,
	'L': 0b00001110,
	'P': 0b01100111,
	'U': 0b00111110,
	'-': 0b00000001,
	' ': 0b00000000,
})

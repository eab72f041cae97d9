package matrix

// Icon is a predefined 8x8 pattern, same row layout as Glyph.
type Icon [8]byte

// Predefined icons.
var (
	IconHeart = Icon{
		0b00000000,
		0b01100110,
		0b11111111,
		0b11111111,
		0b11111111,
		0b01111110,
		0b00111100,
		0b00011000,
	}
	IconSmiley = Icon{
		0b00111100,
		0b01000010,
		0b10100101,
		0b10000001,
		0b10100101,
		0b10011001,
		0b01000010,
		0b00111100,
	}
	IconSadFace = Icon{
		0b00111100,
		0b01000010,
		0b10100101,
		0b10000001,
		0b10011001,
		0b10100101,
		0b01000010,
		0b00111100,
	}
	IconArrowUp = Icon{
		0b00000000,
		0b00010000,
		0b00111000,
		0b01111100,
		0b11111110,
		0b00010000,
		0b00010000,
		0b00010000,
	}
	IconArrowDown = Icon{
		0b00010000,
		0b00010000,
		0b00010000,
		0b11111110,
		0b01111100,
		0b00111000,
		0b00010000,
		0b00000000,
	}
	IconArrowLeft = Icon{
		0b00001000,
		0b00011000,
		0b00111000,
		0b01111111,
		0b00111000,
		0b00011000,
		0b00001000,
		0b00000000,
	}
	IconArrowRight = Icon{
		0b00001000,
		0b00001100,
		0b00001110,
		0b11111111,
		0b00001110,
		0b00001100,
		0b00001000,
		0b00000000,
	}
	IconCheckmark = Icon{
		0b00000001,
		0b00000010,
		0b00000100,
		0b10001000,
		0b01010000,
		0b00100000,
		0b00000000,
		0b00000000,
	}
	IconCross = Icon{
		0b10000001,
		0b01000010,
		0b00100100,
		0b00011000,
		0b00011000,
		0b00100100,
		0b01000010,
		0b10000001,
	}
	IconMusicNote = Icon{
		0b00011100,
		0b00010100,
		0b00011100,
		0b00010100,
		0b11010100,
		0b11110100,
		0b01110000,
		0b00100000,
	}
	IconCircle = Icon{
		0b00111100,
		0b01111110,
		0b11111111,
		0b11111111,
		0b11111111,
		0b11111111,
		0b01111110,
		0b00111100,
	}
)

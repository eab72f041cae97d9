package max7219

// Register is a MAX7219 register address. A register write is a 16-bit
// packet: the address byte (only D8-D11 are decoded) followed by the
// data byte.
type Register byte

// Register addresses per the MAX7219/MAX7221 datasheet.
const (
	// NoOp leaves a device's registers untouched. It is used as filler
	// when a frame targets a subset of the chain.
	NoOp Register = 0x00

	// Digit0 to Digit7 hold the per-digit data. On an 8x8 matrix module
	// each digit register drives one row.
	Digit0 Register = 0x01
	Digit1 Register = 0x02
	Digit2 Register = 0x03
	Digit3 Register = 0x04
	Digit4 Register = 0x05
	Digit5 Register = 0x06
	Digit6 Register = 0x07
	Digit7 Register = 0x08

	// DecodeMode selects Code B BCD decoding per digit.
	DecodeMode Register = 0x09

	// Intensity sets the brightness duty cycle (0x00 to 0x0F).
	Intensity Register = 0x0A

	// ScanLimit sets how many digits are multiplexed (value 0 to 7
	// meaning 1 to 8 digits).
	ScanLimit Register = 0x0B

	// Shutdown gates normal operation: 0x00 shuts the device down,
	// 0x01 enables normal operation.
	Shutdown Register = 0x0C

	// DisplayTest lights every LED regardless of register contents
	// while set to 0x01.
	DisplayTest Register = 0x0F
)

// digitRegister returns the register for digit n. n must be in [0, 8).
func digitRegister(n int) Register {
	return Digit0 + Register(n)
}

// Decode is a value for the DecodeMode register. It selects which
// digits use Code B BCD decoding instead of raw segment control.
type Decode byte

const (
	// DecodeNone disables Code B decoding for all digits. Required for
	// LED matrix modules and for font-driven segment output.
	DecodeNone Decode = 0x00
	// DecodeB0 enables Code B decoding for digit 0 only.
	DecodeB0 Decode = 0x01
	// DecodeB0To3 enables Code B decoding for digits 0 to 3.
	DecodeB0To3 Decode = 0x0F
	// DecodeBAll enables Code B decoding for all 8 digits.
	DecodeBAll Decode = 0xFF
)

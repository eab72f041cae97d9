package max7219

import "errors"

// Errors returned by the driver. All of them are detected before any
// bus traffic happens, so a failed call leaves both the driver and the
// chain untouched. Errors returned by the transport itself are passed
// through verbatim.
var (
	// ErrZeroLengthChain is returned when a driver is constructed for a
	// chain of zero devices.
	ErrZeroLengthChain = errors.New("max7219: chain must contain at least one device")

	// ErrIndexOutOfRange is returned when a device, digit, row or
	// column index is outside the configured bounds.
	ErrIndexOutOfRange = errors.New("max7219: index out of range")

	// ErrIntensityOutOfRange is returned for intensity levels outside
	// the 0 to 15 range supported by the chip.
	ErrIntensityOutOfRange = errors.New("max7219: intensity must be between 0 and 15")

	// ErrScanLimitOutOfRange is returned when the number of scanned
	// digits is outside 1 to 8.
	ErrScanLimitOutOfRange = errors.New("max7219: scan limit must be between 1 and 8 digits")

	// ErrNotInitialized is returned by bus operations attempted before
	// Init has completed, or after a transport failure invalidated the
	// chain state.
	ErrNotInitialized = errors.New("max7219: not initialized")

	// ErrUnsupportedChar is returned by strict character lookups for
	// runes the font has no glyph for. Non-strict lookups substitute a
	// blank glyph instead.
	ErrUnsupportedChar = errors.New("max7219: unsupported character")
)

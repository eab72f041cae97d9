// Package sevenseg is a buffered front end for MAX7219 driven
// seven-segment displays.
//
// It keeps an in-memory digit buffer per device and only touches the
// bus when Flush is called. Characters are rendered to segment
// patterns through a Font, or handed to the chip's Code B decoder for
// BCD operation.
package sevenseg

import (
	"fmt"

	"periph.io/x/devices/v3/max7219"
)

// DP is the decimal point segment, bit 7 of a digit value.
const DP = byte(0x80)

// Dev is a buffered seven-segment display spanning every device of a
// MAX7219 chain. Each device exposes the digit positions configured by
// the driver's scan limit; position 0 is digit 0 of the chip.
type Dev struct {
	d      *max7219.Dev
	font   Font
	digits int

	buf   [][8]byte
	dirty [][8]bool

	// Flush scratch, one entry per device.
	vals []byte
	send []bool
}

// New creates a buffered seven-segment front end on top of an
// initialized MAX7219 driver. font can be nil to use StandardFont.
func New(d *max7219.Dev, font Font) *Dev {
	if font == nil {
		font = StandardFont
	}
	return &Dev{
		d:      d,
		font:   font,
		digits: d.ScanDigits(),
		buf:    make([][8]byte, d.DeviceCount()),
		dirty:  make([][8]bool, d.DeviceCount()),
		vals:   make([]byte, d.DeviceCount()),
		send:   make([]bool, d.DeviceCount()),
	}
}

// Devices returns the number of devices in the chain.
func (s *Dev) Devices() int {
	return len(s.buf)
}

// Digits returns the number of digit positions per device.
func (s *Dev) Digits() int {
	return s.digits
}

// Driver returns the underlying chain driver for low-level access.
func (s *Dev) Driver() *max7219.Dev {
	return s.d
}

// SetDigit renders a character into one digit position of the buffer.
// Characters the font does not cover render blank; use SetDigitStrict
// to surface them instead. dp lights the decimal point.
func (s *Dev) SetDigit(device, pos int, r rune, dp bool) error {
	if err := s.check(device, pos); err != nil {
		return err
	}
	code, _ := s.font.Glyph(r)
	if dp {
		code |= DP
	}
	s.set(device, pos, code)
	return nil
}

// SetDigitStrict is SetDigit, except that characters the font does not
// cover fail with ErrUnsupportedChar and leave the buffer unchanged.
func (s *Dev) SetDigitStrict(device, pos int, r rune, dp bool) error {
	if err := s.check(device, pos); err != nil {
		return err
	}
	code, ok := s.font.Glyph(r)
	if !ok {
		return max7219.ErrUnsupportedChar
	}
	if dp {
		code |= DP
	}
	s.set(device, pos, code)
	return nil
}

// SetRaw writes a raw segment pattern (DP A B C D E F G, bit 7 down to
// bit 0) into one digit position of the buffer.
func (s *Dev) SetRaw(device, pos int, segments byte) error {
	if err := s.check(device, pos); err != nil {
		return err
	}
	s.set(device, pos, segments)
	return nil
}

// Digit reads one buffered segment pattern back.
func (s *Dev) Digit(device, pos int) (byte, error) {
	if err := s.check(device, pos); err != nil {
		return 0, err
	}
	return s.buf[device][pos], nil
}

// WriteString renders a string across the digit positions of one
// device, starting at position 0. A '.' folds into the decimal point
// of the preceding digit instead of occupying a position of its own.
// Strings longer than the device fail with ErrIndexOutOfRange before
// any buffer mutation.
func (s *Dev) WriteString(device int, str string) error {
	if device < 0 || device >= len(s.buf) {
		return max7219.ErrIndexOutOfRange
	}

	codes := make([]byte, 0, s.digits)
	for _, r := range str {
		if r == '.' && len(codes) > 0 && codes[len(codes)-1]&DP == 0 {
			codes[len(codes)-1] |= DP
			continue
		}
		code, _ := s.font.Glyph(r)
		codes = append(codes, code)
	}
	if len(codes) > s.digits {
		return max7219.ErrIndexOutOfRange
	}

	for pos, code := range codes {
		s.set(device, pos, code)
	}
	return nil
}

// WriteBCD writes a Code B value into one digit position of the
// buffer. The device must be in a Code B decode mode for the chip to
// interpret it; see max7219.Dev.SetDecodeMode. Supported characters
// are '0' to '9', '-', 'E', 'H', 'L', 'P' and space; anything else
// fails with ErrUnsupportedChar.
func (s *Dev) WriteBCD(device, pos int, r rune, dp bool) error {
	if err := s.check(device, pos); err != nil {
		return err
	}

	var code byte
	switch {
	case r >= '0' && r <= '9':
		code = byte(r - '0')
	case r == '-':
		code = 0x0A
	case r == 'E':
		code = 0x0B
	case r == 'H':
		code = 0x0C
	case r == 'L':
		code = 0x0D
	case r == 'P':
		code = 0x0E
	case r == ' ':
		code = 0x0F
	default:
		return max7219.ErrUnsupportedChar
	}
	if dp {
		code |= DP
	}
	s.set(device, pos, code)
	return nil
}

// Clear blanks the whole buffer. The hardware keeps its previous
// contents until Flush.
func (s *Dev) Clear() {
	for dev := range s.buf {
		for pos := 0; pos < s.digits; pos++ {
			if s.buf[dev][pos] != 0 {
				s.buf[dev][pos] = 0
				s.dirty[dev][pos] = true
			}
		}
	}
}

// Flush commits every dirty digit position to the hardware, one chain
// transaction per digit register, with no-op slots for devices whose
// position did not change. The buffer is left unchanged.
func (s *Dev) Flush() error {
	for pos := 0; pos < s.digits; pos++ {
		any := false
		for dev := range s.buf {
			s.vals[dev] = s.buf[dev][pos]
			s.send[dev] = s.dirty[dev][pos]
			any = any || s.send[dev]
		}
		if !any {
			continue
		}
		if err := s.d.WriteDigits(pos, s.vals, s.send); err != nil {
			return err
		}
		for dev := range s.dirty {
			s.dirty[dev][pos] = false
		}
	}
	return nil
}

// Halt blanks the display and shuts the chain down.
func (s *Dev) Halt() error {
	s.Clear()
	return s.d.Halt()
}

// String returns a string representation of the display.
func (s *Dev) String() string {
	return fmt.Sprintf("sevenseg.Dev{%d devices, %d digits}", len(s.buf), s.digits)
}

func (s *Dev) set(device, pos int, code byte) {
	if s.buf[device][pos] != code {
		s.buf[device][pos] = code
		s.dirty[device][pos] = true
	}
}

func (s *Dev) check(device, pos int) error {
	if device < 0 || device >= len(s.buf) {
		return max7219.ErrIndexOutOfRange
	}
	if pos < 0 || pos >= s.digits {
		return max7219.ErrIndexOutOfRange
	}
	return nil
}

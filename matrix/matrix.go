// Package matrix is a buffered front end for MAX7219 driven 8x8 LED
// matrix modules.
//
// It keeps an in-memory row buffer per device and only touches the bus
// when Flush is called, so several drawing operations can be combined
// into one visually atomic update. Flush is differential: only rows
// that changed since the previous flush are sent, one chain transaction
// per row register, with untouched devices receiving no-ops.
package matrix

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/max7219"
	"periph.io/x/devices/v3/max7219/image1bit"
)

// Dev is a buffered LED matrix spanning every device of a MAX7219
// chain. Device 0 holds the leftmost 8 columns.
//
// Row 0 is the top row; column 0 is the leftmost column and maps to
// bit 7 of a row byte. This matches the FC-16 style modules the driver
// is written for; mirrored modules can be accommodated by flipping the
// image before drawing.
type Dev struct {
	d    *max7219.Dev
	font Font

	// Per-device row buffer and per-row dirty flags. buf mutations
	// never touch the bus; Flush commits dirty rows.
	buf   [][8]byte
	dirty [][8]bool

	// Flush scratch, one entry per device.
	vals []byte
	send []bool
}

// New creates a buffered matrix front end on top of an initialized
// MAX7219 driver. font can be nil to use Font8x8.
func New(d *max7219.Dev, font Font) *Dev {
	if font == nil {
		font = Font8x8
	}
	return &Dev{
		d:     d,
		font:  font,
		buf:   make([][8]byte, d.DeviceCount()),
		dirty: make([][8]bool, d.DeviceCount()),
		vals:  make([]byte, d.DeviceCount()),
		send:  make([]bool, d.DeviceCount()),
	}
}

// Devices returns the number of 8x8 modules in the chain.
func (m *Dev) Devices() int {
	return len(m.buf)
}

// Driver returns the underlying chain driver for low-level access.
func (m *Dev) Driver() *max7219.Dev {
	return m.d
}

// SetPixel sets or clears one LED in the buffer. The bus is not
// touched; call Flush to commit.
func (m *Dev) SetPixel(device, row, col int, on bool) error {
	if err := m.check(device, row, col); err != nil {
		return err
	}
	mask := byte(0x80) >> col
	old := m.buf[device][row]
	if on {
		m.buf[device][row] = old | mask
	} else {
		m.buf[device][row] = old &^ mask
	}
	if m.buf[device][row] != old {
		m.dirty[device][row] = true
	}
	return nil
}

// Pixel reads one LED back from the buffer, regardless of what has
// been flushed.
func (m *Dev) Pixel(device, row, col int) (bool, error) {
	if err := m.check(device, row, col); err != nil {
		return false, err
	}
	return m.buf[device][row]&(0x80>>col) != 0, nil
}

// SetRow overwrites one buffered row. Bit 7 is the leftmost column.
func (m *Dev) SetRow(device, row int, bits byte) error {
	if err := m.check(device, row, 0); err != nil {
		return err
	}
	if m.buf[device][row] != bits {
		m.buf[device][row] = bits
		m.dirty[device][row] = true
	}
	return nil
}

// Row returns one buffered row.
func (m *Dev) Row(device, row int) (byte, error) {
	if err := m.check(device, row, 0); err != nil {
		return 0, err
	}
	return m.buf[device][row], nil
}

// WriteGlyph overwrites a contiguous block of buffered rows of one
// device, starting at rowOffset.
func (m *Dev) WriteGlyph(device, rowOffset int, rows []byte) error {
	if device < 0 || device >= len(m.buf) {
		return max7219.ErrIndexOutOfRange
	}
	if rowOffset < 0 || rowOffset+len(rows) > 8 {
		return max7219.ErrIndexOutOfRange
	}
	for i, bits := range rows {
		if m.buf[device][rowOffset+i] != bits {
			m.buf[device][rowOffset+i] = bits
			m.dirty[device][rowOffset+i] = true
		}
	}
	return nil
}

// DrawChar draws one character on one device using the configured
// font. Unsupported characters render as a blank glyph.
func (m *Dev) DrawChar(device int, r rune) error {
	g, _ := m.font.Glyph(r)
	return m.WriteGlyph(device, 0, g[:])
}

// DrawIcon draws one of the predefined icons on one device.
func (m *Dev) DrawIcon(device int, ic Icon) error {
	return m.WriteGlyph(device, 0, ic[:])
}

// Fill lights every LED of one device in the buffer.
func (m *Dev) Fill(device int) error {
	rows := [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	return m.WriteGlyph(device, 0, rows[:])
}

// Clear blanks the whole buffer. The hardware keeps its previous
// contents until Flush.
func (m *Dev) Clear() {
	for dev := range m.buf {
		for row := 0; row < 8; row++ {
			if m.buf[dev][row] != 0 {
				m.buf[dev][row] = 0
				m.dirty[dev][row] = true
			}
		}
	}
}

// Flush commits every dirty row to the hardware, one chain transaction
// per row register. Devices whose row did not change receive a no-op
// slot, so a frame never disturbs them. The buffer itself is left
// unchanged and can be flushed again.
//
// If the transport fails mid-flush the remaining rows keep their dirty
// flag and the underlying driver reports ErrNotInitialized until Init
// is re-run.
func (m *Dev) Flush() error {
	for row := 0; row < 8; row++ {
		any := false
		for dev := range m.buf {
			m.vals[dev] = m.buf[dev][row]
			m.send[dev] = m.dirty[dev][row]
			any = any || m.send[dev]
		}
		if !any {
			continue
		}
		if err := m.d.WriteDigits(row, m.vals, m.send); err != nil {
			return err
		}
		for dev := range m.dirty {
			m.dirty[dev][row] = false
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (m *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. The chain is presented as one wide
// image, 8 pixels tall, with device 0 leftmost.
func (m *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, 8*len(m.buf), 8)
}

// Draw implements display.Drawer. The source image is converted to
// 1-bit, merged into the buffer and flushed.
func (m *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(m.Bounds())
	if dst.Empty() {
		return nil
	}

	img := image1bit.NewHorizontalMSB(m.Bounds())
	for dev := range m.buf {
		for row := 0; row < 8; row++ {
			img.SetRow(8*dev, row, m.buf[dev][row])
		}
	}

	draw.Draw(img, dst, src, sp, draw.Src)

	for dev := range m.buf {
		for row := 0; row < 8; row++ {
			if err := m.SetRow(dev, row, img.Row(8*dev, row)); err != nil {
				return err
			}
		}
	}
	return m.Flush()
}

// Halt blanks the display and shuts the chain down. It implements
// conn.Resource.
func (m *Dev) Halt() error {
	m.Clear()
	return m.d.Halt()
}

// String returns a string representation of the matrix.
func (m *Dev) String() string {
	return fmt.Sprintf("matrix.Dev{%dx8}", 8*len(m.buf))
}

func (m *Dev) check(device, row, col int) error {
	if device < 0 || device >= len(m.buf) {
		return max7219.ErrIndexOutOfRange
	}
	if row < 0 || row >= 8 || col < 0 || col >= 8 {
		return max7219.ErrIndexOutOfRange
	}
	return nil
}

var _ display.Drawer = &Dev{}

// Package image1bit provides a 1-bit image format matched to MAX7219
// LED matrix modules.
//
// Rows are packed 8 pixels per byte with the most significant bit being
// the leftmost pixel, which is exactly the layout of a MAX7219 digit
// register driving a matrix row. This package provides the Bit color
// type and the HorizontalMSB image implementation.
package image1bit

import (
	"image"
	"image/color"
)

// Bit is a 1-bit color: an LED is either lit or dark.
type Bit bool

// Possible bit values.
const (
	On  Bit = true
	Off Bit = false
)

// RGBA converts the bit to standard RGBA.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit, lit when the luminosity is at
// least half.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// HorizontalMSB is a 1-bit image where each byte packs 8 horizontally
// adjacent pixels, most significant bit leftmost.
type HorizontalMSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalMSB creates a new HorizontalMSB image with the specified
// bounds. The width is rounded up to a multiple of 8 for storage.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalMSB{Rect: r}
	}

	stride := (w + 7) / 8
	return &HorizontalMSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalMSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *HorizontalMSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *HorizontalMSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the bit of the pixel at (x, y). Out of bounds pixels
// are Off.
func (p *HorizontalMSB) BitAt(x, y int) Bit {
	if !(image.Point{x, y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.index(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the pixel at (x, y) to the given color, converted through
// BitModel. Out of bounds writes are ignored.
func (p *HorizontalMSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, toBit(c).(Bit))
}

// SetBit sets the bit of the pixel at (x, y). Out of bounds writes are
// ignored.
func (p *HorizontalMSB) SetBit(x, y int, b Bit) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset, mask := p.index(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Row returns the packed byte holding pixels [x, x+8) of row y. x must
// be a multiple of 8 inside the bounds.
func (p *HorizontalMSB) Row(x, y int) byte {
	offset, _ := p.index(x, y)
	return p.Pix[offset]
}

// SetRow overwrites the packed byte holding pixels [x, x+8) of row y.
// x must be a multiple of 8 inside the bounds.
func (p *HorizontalMSB) SetRow(x, y int, b byte) {
	offset, _ := p.index(x, y)
	p.Pix[offset] = b
}

// index returns the byte offset and bit mask for the pixel at (x, y).
func (p *HorizontalMSB) index(x, y int) (int, byte) {
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	return y*p.Stride + x/8, 0x80 >> (x % 8)
}

var _ image.Image = &HorizontalMSB{}

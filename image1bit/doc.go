// Package image1bit provides a 1-bit image format for MAX7219 LED matrix modules.
//
// A MAX7219 digit register driving an 8x8 matrix row holds 8 pixels in one
// byte, most significant bit leftmost. This package stores image rows in the
// same packing so a row can be copied to the chip without reshuffling.
//
// Memory layout example for an 8-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7
//	Lit:    x . . x x . . x
//	Byte:   0b10011001 = 0x99
//
// This package provides:
//
// - Bit: A color type representing a single LED (On or Off)
// - BitModel: A color model for converting standard Go colors to Bit
// - HorizontalMSB: An image.Image implementation matching the MAX7219 row layout
//
// Example usage:
//
//	// Create a 32x8 image (4 cascaded modules)
//	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, 32, 8))
//
//	// Light a pixel
//	img.SetBit(10, 2, image1bit.On)
//
//	// Read it back
//	println(img.BitAt(10, 2) == image1bit.On) // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit

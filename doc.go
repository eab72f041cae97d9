// Package max7219 controls daisy-chained MAX7219/MAX7221 LED display controllers via SPI.
//
// The MAX7219 drives an 8×8 LED matrix or up to eight 7-segment digits from a
// single chip. Devices cascade through DOUT→DIN, so a chain of any length is
// addressed through one SPI port and one load line.
//
// # Chip Characteristics
//
// - 8 digit registers, each holding one row (matrix) or one digit (segments)
// - 16 intensity levels (0-15) via an internal PWM
// - Configurable scan limit (1 to 8 multiplexed digits)
// - Optional Code B BCD decoding for numeric output
// - Shutdown mode preserving all register contents
// - Display test mode lighting every LED
//
// # Hardware Connection
//
// Connect the first module to your system via SPI:
//
//	Module Pin → System Pin
//	GND        → GND
//	VCC        → 5V (logic tolerant of 3.3V MOSI on most modules)
//	CLK        → SPI Clock (SCLK)
//	DIN        → SPI Data (MOSI)
//	CS         → SPI Chip Select (the load line)
//
// Further modules chain from the previous module's DOUT to their DIN, sharing
// CLK and CS. Device 0 is the module electrically nearest the controller.
//
// # Wire Format
//
// Every bus transaction addresses the whole chain: for N devices, exactly 2×N
// bytes are shifted out, one (register, value) pair per device, device 0's
// pair first:
//
//	[reg0, val0, reg1, val1, …, regN-1, valN-1]
//
// Devices not targeted by an operation receive a (NoOp, 0) pair. The load
// line is asserted around the whole frame, so all devices latch together and
// a frame is never split across transactions.
//
// # Basic Usage
//
// Example of scrolling text across four cascaded matrix modules:
//
//	package main
//
//	import (
//		"time"
//
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/max7219"
//		"periph.io/x/devices/v3/max7219/matrix"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		port, _ := spireg.Open("")
//
//		// Create and initialize the chain
//		dev, _ := max7219.NewSPI(port, &max7219.Opts{Devices: 4, Intensity: 7})
//		defer dev.Halt()
//
//		// Scroll a message
//		m := matrix.New(dev, nil)
//		s := matrix.NewScroller("HELLO WORLD", nil, &matrix.ScrollOpts{Mode: matrix.ScrollLoop})
//		for {
//			s.Step(m)
//			m.Flush()
//			time.Sleep(50 * time.Millisecond)
//		}
//	}
//
// # Seven-Segment Displays
//
// The sevenseg subpackage renders characters to segment patterns, or hands
// digits to the chip's Code B decoder:
//
//	dev, _ := max7219.NewSPI(port, &max7219.Opts{Devices: 1})
//	seg := sevenseg.New(dev, nil)
//	seg.WriteString(0, "3.141592")
//	seg.Flush()
//
// # Buffered Updates
//
// The matrix and sevenseg front ends never touch the bus on mutation; only
// Flush does. Flush is differential: it sends one chain transaction per digit
// register that changed, with no-op slots for untouched devices, so a burst
// of drawing calls commits as a minimal, visually atomic update.
//
// # Initialization and Errors
//
// Init brings every device to a known state and must complete before any
// other bus operation; the driver enforces this and reports
// ErrNotInitialized otherwise. A transport failure leaves the chain's
// register state indeterminate: the driver drops back to the uninitialized
// state and Init must be re-run.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX7219-MAX7221.pdf
package max7219

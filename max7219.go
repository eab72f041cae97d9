// Package max7219 controls daisy-chained MAX7219/MAX7221 LED display
// controllers via SPI.
//
// Each device drives an 8x8 LED matrix or up to 8 seven-segment digits.
// Devices are cascaded through DOUT->DIN and share one load/chip-select
// line, so one bus transaction always addresses the whole chain.
//
// See the matrix and sevenseg subpackages for buffered, font-aware
// front ends, and the examples for how to use this package.
package max7219

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts is the configuration for a chain of MAX7219 devices.
type Opts struct {
	// Devices is the number of cascaded devices. Device 0 is the one
	// electrically nearest the controller. Must be at least 1.
	Devices int

	// Intensity is the brightness duty cycle applied during Init,
	// 0 (dimmest) to 15 (brightest).
	Intensity int

	// ScanDigits is how many digits (or matrix rows) each device
	// multiplexes, 1 to 8. 0 selects all 8.
	ScanDigits int

	// Decode selects Code B BCD decoding. Leave as DecodeNone for LED
	// matrix modules and font-driven segment output.
	Decode Decode
}

// DefaultOpts is the configuration applied when NewSPI or New is given
// nil options: a single device at medium brightness with all digits
// scanned and no BCD decoding.
var DefaultOpts = Opts{
	Devices:    1,
	Intensity:  7,
	ScanDigits: 8,
	Decode:     DecodeNone,
}

// Dev is the device handle for a chain of MAX7219 devices.
//
// The chain length is fixed at construction. A frame addressed to the
// chain is always 2xN bytes, one (register, value) pair per device,
// with slot i holding the pair for device i:
//
//	[reg0, val0, reg1, val1, ..., regN-1, valN-1]
//
// The whole frame is shifted out in a single transaction so that all
// devices latch together. Devices not targeted by an operation receive
// a (NoOp, 0) pair.
type Dev struct {
	c conn.Conn

	// Chain topology, fixed for the lifetime of the driver.
	devices    int
	scanDigits int
	intensity  int
	decode     Decode

	// Scratch frame, 2 bytes per device. Reused by every operation so
	// steady-state writes do not allocate.
	frame []byte

	// initialized is false until Init completes, and drops back to
	// false after a transport failure since a partially shifted frame
	// leaves the chain's register state indeterminate.
	initialized bool
}

// New creates a driver for a chain of MAX7219 devices on the given
// connection.
//
// No bus traffic happens until Init is called. opts can be nil to use
// DefaultOpts.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}

	if opts.Devices <= 0 {
		return nil, ErrZeroLengthChain
	}
	if opts.Intensity < 0 || opts.Intensity > 15 {
		return nil, ErrIntensityOutOfRange
	}
	scan := opts.ScanDigits
	if scan == 0 {
		scan = 8
	}
	if scan < 1 || scan > 8 {
		return nil, ErrScanLimitOutOfRange
	}

	return &Dev{
		c:          c,
		devices:    opts.Devices,
		scanDigits: scan,
		intensity:  opts.Intensity,
		decode:     opts.Decode,
		frame:      make([]byte, 2*opts.Devices),
	}, nil
}

// NewSPI creates an initialized driver for a chain of MAX7219 devices
// connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers, the maximum the MAX7219 datasheet allows. opts can be nil
// to use DefaultOpts.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	d, err := New(c, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// DeviceCount returns the number of devices in the chain.
func (d *Dev) DeviceCount() int {
	return d.devices
}

// ScanDigits returns how many digits each device multiplexes.
func (d *Dev) ScanDigits() int {
	return d.scanDigits
}

// Init brings every device in the chain to a known state:
//
//	Shutdown    = 0 (stop multiplexing while reconfiguring)
//	DisplayTest = 0
//	DecodeMode  = configured decode
//	ScanLimit   = configured digits - 1
//	Intensity   = configured level
//	Digit0..7   = 0 (the registers power up with random contents)
//	Shutdown    = 1 (normal operation)
//
// Releasing shutdown last guarantees nothing is multiplexed onto the
// LEDs before the configuration registers and digit data are valid.
//
// Init may be called again at any time, and must be called again after
// a transport failure.
func (d *Dev) Init() error {
	d.initialized = false

	seq := []struct {
		reg   Register
		value byte
	}{
		{Shutdown, 0x00},
		{DisplayTest, 0x00},
		{DecodeMode, byte(d.decode)},
		{ScanLimit, byte(d.scanDigits - 1)},
		{Intensity, byte(d.intensity)},
	}
	for _, s := range seq {
		if err := d.broadcast(s.reg, s.value); err != nil {
			return err
		}
	}
	for n := 0; n < 8; n++ {
		if err := d.broadcast(digitRegister(n), 0x00); err != nil {
			return err
		}
	}
	if err := d.broadcast(Shutdown, 0x01); err != nil {
		return err
	}

	d.initialized = true
	return nil
}

// WriteRegister writes value to one register of one device. Every
// other device in the chain receives a no-op.
func (d *Dev) WriteRegister(device int, reg Register, value byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if device < 0 || device >= d.devices {
		return ErrIndexOutOfRange
	}
	return d.one(device, reg, value)
}

// WriteRegisterAll writes the same value to the same register of every
// device in the chain, in a single transaction.
func (d *Dev) WriteRegisterAll(reg Register, value byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.broadcast(reg, value)
}

// WriteDigit writes a raw 8-bit pattern to a digit register (0 to 7) of
// one device. On a matrix module the digit selects the row and bit 7 is
// the leftmost column; on a segment display the bits are DP A B C D E F
// G from bit 7 down to bit 0.
func (d *Dev) WriteDigit(device, digit int, value byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if device < 0 || device >= d.devices {
		return ErrIndexOutOfRange
	}
	if digit < 0 || digit >= 8 {
		return ErrIndexOutOfRange
	}
	return d.one(device, digitRegister(digit), value)
}

// WriteDigits writes one digit register across the whole chain in a
// single transaction. values must hold one byte per device. Devices
// whose entry in send is false receive a no-op instead of their value;
// a nil send writes every device.
//
// This is the flush primitive of the buffered front ends: it commits
// one row (or digit position) of every device atomically.
func (d *Dev) WriteDigits(digit int, values []byte, send []bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if digit < 0 || digit >= 8 {
		return ErrIndexOutOfRange
	}
	if len(values) != d.devices || (send != nil && len(send) != d.devices) {
		return ErrIndexOutOfRange
	}

	reg := digitRegister(digit)
	for i := 0; i < d.devices; i++ {
		if send == nil || send[i] {
			d.frame[2*i] = byte(reg)
			d.frame[2*i+1] = values[i]
		} else {
			d.frame[2*i] = byte(NoOp)
			d.frame[2*i+1] = 0x00
		}
	}
	return d.send()
}

// SetIntensity sets the brightness duty cycle (0 to 15) of one device.
func (d *Dev) SetIntensity(device, level int) error {
	if level < 0 || level > 15 {
		return ErrIntensityOutOfRange
	}
	return d.WriteRegister(device, Intensity, byte(level))
}

// SetIntensityAll sets the brightness duty cycle (0 to 15) of every
// device in the chain.
func (d *Dev) SetIntensityAll(level int) error {
	if level < 0 || level > 15 {
		return ErrIntensityOutOfRange
	}
	return d.WriteRegisterAll(Intensity, byte(level))
}

// SetDecodeMode selects Code B BCD decoding for one device.
func (d *Dev) SetDecodeMode(device int, mode Decode) error {
	return d.WriteRegister(device, DecodeMode, byte(mode))
}

// SetScanLimit sets how many digits (1 to 8) one device multiplexes.
//
// Reducing the scan limit raises the duty cycle of the remaining
// digits; the datasheet warns against limits below 3 digits at full
// intensity.
func (d *Dev) SetScanLimit(device, digits int) error {
	if digits < 1 || digits > 8 {
		return ErrScanLimitOutOfRange
	}
	return d.WriteRegister(device, ScanLimit, byte(digits-1))
}

// SetDisplayTest enables or disables the display test mode of one
// device. While enabled, every LED is lit regardless of digit data.
func (d *Dev) SetDisplayTest(device int, on bool) error {
	return d.WriteRegister(device, DisplayTest, testByte(on))
}

// Power switches every device between shutdown and normal operation.
// Register contents are preserved across shutdown.
func (d *Dev) Power(on bool) error {
	return d.WriteRegisterAll(Shutdown, testByte(on))
}

// ClearAll writes zero to every digit register of every device, one
// transaction per register.
//
// Unlike the other bus operations ClearAll is also permitted before
// Init, so a host can blank a chain in an unknown state.
func (d *Dev) ClearAll() error {
	for n := 0; n < 8; n++ {
		if err := d.broadcast(digitRegister(n), 0x00); err != nil {
			return err
		}
	}
	return nil
}

// Halt shuts the whole chain down. It implements conn.Resource.
//
// After Halt the driver reports ErrNotInitialized until Init is called
// again.
func (d *Dev) Halt() error {
	if !d.initialized {
		return nil
	}
	err := d.broadcast(Shutdown, 0x00)
	d.initialized = false
	return err
}

// String returns a string representation of the device chain.
func (d *Dev) String() string {
	return fmt.Sprintf("max7219.Dev{%d devices on %s}", d.devices, d.c)
}

// one builds a frame targeting a single device, with no-ops for the
// rest of the chain, and sends it.
func (d *Dev) one(device int, reg Register, value byte) error {
	for i := range d.frame {
		d.frame[i] = 0x00
	}
	d.frame[2*device] = byte(reg)
	d.frame[2*device+1] = value
	return d.send()
}

// broadcast builds a frame carrying the same (register, value) pair for
// every device and sends it.
func (d *Dev) broadcast(reg Register, value byte) error {
	for i := 0; i < d.devices; i++ {
		d.frame[2*i] = byte(reg)
		d.frame[2*i+1] = value
	}
	return d.send()
}

// send shifts the scratch frame out in one transaction. The transport
// asserts the load line around the whole frame, so all devices latch
// the new register contents together.
func (d *Dev) send() error {
	if err := d.c.Tx(d.frame, nil); err != nil {
		// A partially shifted frame cannot be resumed; the chain is in
		// an indeterminate state until the caller re-runs Init.
		d.initialized = false
		return err
	}
	return nil
}

func testByte(on bool) byte {
	if on {
		return 0x01
	}
	return 0x00
}

var _ conn.Resource = &Dev{}

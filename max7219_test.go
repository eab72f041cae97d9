package max7219

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi/spitest"
)

// recordConn is a conn.Conn that records every frame shifted out, one
// entry per transaction.
type recordConn struct {
	ops [][]byte
	err error
}

func (r *recordConn) String() string { return "record" }

func (r *recordConn) Duplex() conn.Duplex { return conn.Half }

func (r *recordConn) Tx(w, rx []byte) error {
	if r.err != nil {
		return r.err
	}
	r.ops = append(r.ops, append([]byte(nil), w...))
	return nil
}

func newActive(t *testing.T, devices int) (*Dev, *recordConn) {
	t.Helper()
	rec := &recordConn{}
	d, err := New(rec, &Opts{Devices: devices, Intensity: 7, ScanDigits: 8})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	rec.ops = nil
	return d, rec
}

func TestOptsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Opts
		wantErr error
	}{
		{"nil options (uses defaults)", nil, nil},
		{"valid 4 devices", &Opts{Devices: 4, Intensity: 7}, nil},
		{"scan digits zero selects all 8", &Opts{Devices: 1, ScanDigits: 0}, nil},
		{"zero devices", &Opts{Devices: 0}, ErrZeroLengthChain},
		{"negative devices", &Opts{Devices: -1}, ErrZeroLengthChain},
		{"intensity too high", &Opts{Devices: 1, Intensity: 16}, ErrIntensityOutOfRange},
		{"intensity negative", &Opts{Devices: 1, Intensity: -1}, ErrIntensityOutOfRange},
		{"scan digits too high", &Opts{Devices: 1, ScanDigits: 9}, ErrScanLimitOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(&recordConn{}, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && d == nil {
				t.Fatal("New() returned nil device without error")
			}
		})
	}
}

func TestInitSequenceBytes(t *testing.T) {
	rec := &recordConn{}
	d, err := New(rec, &Opts{Devices: 2, Intensity: 7, ScanDigits: 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.ops) != 0 {
		t.Fatalf("New must not touch the bus, saw %d transactions", len(rec.ops))
	}

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{
		{0x0C, 0x00, 0x0C, 0x00}, // shutdown
		{0x0F, 0x00, 0x0F, 0x00}, // display test off
		{0x09, 0x00, 0x09, 0x00}, // no decode
		{0x0B, 0x07, 0x0B, 0x07}, // scan all 8 digits
		{0x0A, 0x07, 0x0A, 0x07}, // intensity
		{0x01, 0x00, 0x01, 0x00}, // digit wipe
		{0x02, 0x00, 0x02, 0x00},
		{0x03, 0x00, 0x03, 0x00},
		{0x04, 0x00, 0x04, 0x00},
		{0x05, 0x00, 0x05, 0x00},
		{0x06, 0x00, 0x06, 0x00},
		{0x07, 0x00, 0x07, 0x00},
		{0x08, 0x00, 0x08, 0x00},
		{0x0C, 0x01, 0x0C, 0x01}, // normal operation, last
	}
	assert.Equal(t, want, rec.ops, "init sequence must be byte-exact and ordered")
}

func TestNewSPIInitStream(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := NewSPI(spitest.NewRecordRaw(&buf), &Opts{Devices: 1, Intensity: 3, ScanDigits: 8})
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x0C, 0x00,
		0x0F, 0x00,
		0x09, 0x00,
		0x0B, 0x07,
		0x0A, 0x03,
		0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00,
		0x05, 0x00, 0x06, 0x00, 0x07, 0x00, 0x08, 0x00,
		0x0C, 0x01,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("init stream = % x, want % x", buf.Bytes(), want)
	}

	if got, expected := d.String(), "max7219.Dev{1 devices on recordraw}"; got != expected {
		t.Errorf("String() = %q, want %q", got, expected)
	}
}

func TestWriteRegisterAllBroadcast(t *testing.T) {
	for _, devices := range []int{1, 2, 3, 4} {
		d, rec := newActive(t, devices)

		if err := d.WriteRegisterAll(Intensity, 0x0B); err != nil {
			t.Fatal(err)
		}
		assert.Len(t, rec.ops, 1, "a broadcast is a single transaction")
		frame := rec.ops[0]
		assert.Len(t, frame, 2*devices, "frame length must be 2 bytes per device")
		for i := 0; i < devices; i++ {
			assert.Equal(t, byte(Intensity), frame[2*i], "slot %d register", i)
			assert.Equal(t, byte(0x0B), frame[2*i+1], "slot %d value", i)
		}
	}
}

func TestWriteRegisterSingleDevice(t *testing.T) {
	d, rec := newActive(t, 2)

	if err := d.WriteRegister(1, Intensity, 0x03); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x00, 0x0A, 0x03}
	assert.Equal(t, [][]byte{want}, rec.ops, "untargeted device must receive a no-op pair")

	rec.ops = nil
	if err := d.WriteRegister(2, Intensity, 0x03); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("device 2 of 2: error = %v, want ErrIndexOutOfRange", err)
	}
	if len(rec.ops) != 0 {
		t.Fatal("rejected write must not touch the bus")
	}
}

func TestWriteDigitsMasked(t *testing.T) {
	d, rec := newActive(t, 2)

	if err := d.WriteDigits(0, []byte{0x55, 0x80}, []bool{false, true}); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, [][]byte{{0x00, 0x00, 0x01, 0x80}}, rec.ops)

	rec.ops = nil
	if err := d.WriteDigits(0, []byte{0x55, 0x80}, nil); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, [][]byte{{0x01, 0x55, 0x01, 0x80}}, rec.ops)

	if err := d.WriteDigits(8, []byte{0, 0}, nil); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("digit 8: error = %v, want ErrIndexOutOfRange", err)
	}
	if err := d.WriteDigits(0, []byte{0}, nil); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("short values: error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSetIntensityRange(t *testing.T) {
	d, rec := newActive(t, 1)

	if err := d.SetIntensity(0, 16); !errors.Is(err, ErrIntensityOutOfRange) {
		t.Fatalf("SetIntensity(16): error = %v, want ErrIntensityOutOfRange", err)
	}
	if err := d.SetIntensityAll(-1); !errors.Is(err, ErrIntensityOutOfRange) {
		t.Fatalf("SetIntensityAll(-1): error = %v, want ErrIntensityOutOfRange", err)
	}
	if len(rec.ops) != 0 {
		t.Fatalf("rejected intensity must not touch the bus, saw %d transactions", len(rec.ops))
	}

	if err := d.SetIntensity(0, 15); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, [][]byte{{0x0A, 0x0F}}, rec.ops)
}

func TestNotInitialized(t *testing.T) {
	rec := &recordConn{}
	d, err := New(rec, &Opts{Devices: 1, Intensity: 7})
	if err != nil {
		t.Fatal(err)
	}

	if err := d.WriteRegister(0, Intensity, 1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("WriteRegister: error = %v, want ErrNotInitialized", err)
	}
	if err := d.WriteRegisterAll(Shutdown, 1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("WriteRegisterAll: error = %v, want ErrNotInitialized", err)
	}
	if err := d.WriteDigit(0, 0, 0xFF); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("WriteDigit: error = %v, want ErrNotInitialized", err)
	}
	if len(rec.ops) != 0 {
		t.Fatal("uninitialized operations must not touch the bus")
	}

	// Blanking a chain in an unknown state is explicitly allowed.
	if err := d.ClearAll(); err != nil {
		t.Fatalf("ClearAll before Init: %v", err)
	}
	if len(rec.ops) != 8 {
		t.Fatalf("ClearAll sent %d transactions, want 8", len(rec.ops))
	}
}

func TestTransportFailure(t *testing.T) {
	d, rec := newActive(t, 2)

	boom := errors.New("spi: broken wire")
	rec.err = boom
	if err := d.WriteRegisterAll(Intensity, 1); !errors.Is(err, boom) {
		t.Fatalf("transport error must propagate verbatim, got %v", err)
	}

	// The chain state is indeterminate after a failed transfer; the
	// driver must demand a re-init.
	rec.err = nil
	if err := d.WriteRegisterAll(Intensity, 1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("after transport failure: error = %v, want ErrNotInitialized", err)
	}

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteRegisterAll(Intensity, 1); err != nil {
		t.Fatalf("after re-init: %v", err)
	}
}

func TestHalt(t *testing.T) {
	d, rec := newActive(t, 2)

	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, [][]byte{{0x0C, 0x00, 0x0C, 0x00}}, rec.ops)

	if err := d.Power(true); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("after Halt: error = %v, want ErrNotInitialized", err)
	}

	// Halting an uninitialized chain is a no-op.
	rec.ops = nil
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if len(rec.ops) != 0 {
		t.Fatal("second Halt must not touch the bus")
	}
}

func TestDisplayTestAndScanLimit(t *testing.T) {
	d, rec := newActive(t, 1)

	if err := d.SetDisplayTest(0, true); err != nil {
		t.Fatal(err)
	}
	if err := d.SetScanLimit(0, 4); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, [][]byte{{0x0F, 0x01}, {0x0B, 0x03}}, rec.ops)

	if err := d.SetScanLimit(0, 0); !errors.Is(err, ErrScanLimitOutOfRange) {
		t.Fatalf("SetScanLimit(0): error = %v, want ErrScanLimitOutOfRange", err)
	}
	if err := d.SetScanLimit(0, 9); !errors.Is(err, ErrScanLimitOutOfRange) {
		t.Fatalf("SetScanLimit(9): error = %v, want ErrScanLimitOutOfRange", err)
	}
}

func TestDigitRegisters(t *testing.T) {
	for n, want := range []Register{Digit0, Digit1, Digit2, Digit3, Digit4, Digit5, Digit6, Digit7} {
		if got := digitRegister(n); got != want {
			t.Errorf("digitRegister(%d) = %#02x, want %#02x", n, got, want)
		}
	}
}

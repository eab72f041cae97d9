package matrix

// ScrollMode selects what happens when scrolling text reaches the end
// of its column strip.
type ScrollMode int

const (
	// ScrollLoop wraps around to the beginning and never finishes.
	ScrollLoop ScrollMode = iota
	// ScrollBounce reverses direction at either end and never
	// finishes.
	ScrollBounce
	// ScrollOnce scrolls the text off the display exactly once, then
	// reports Finished.
	ScrollOnce
)

// ScrollOpts is the configuration for a Scroller.
type ScrollOpts struct {
	// Mode selects the termination behavior.
	Mode ScrollMode

	// Gap is the number of blank columns inserted between glyphs.
	// 0 selects the default of one column.
	Gap int
}

// Scroller renders text as a wide column strip and steps an
// 8-row window over it into a matrix buffer.
//
// A Scroller holds no reference to a device and performs no bus
// traffic or timing on its own: Step writes one frame worth of columns
// into the given buffer and returns, and the caller decides when to
// flush and how fast to pace the animation. This keeps scrolls fully
// testable without real time.
type Scroller struct {
	strip  []byte // one byte per column, bit n = row n
	mode   ScrollMode
	offset int
	dir    int
	done   bool
}

// NewScroller builds a scroller for the given text. Unsupported
// characters render as blank glyphs. opts can be nil for a looping
// scroll with the default gap.
func NewScroller(text string, font Font, opts *ScrollOpts) *Scroller {
	if font == nil {
		font = Font8x8
	}
	if opts == nil {
		opts = &ScrollOpts{}
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 1
	}

	var strip []byte
	for i, r := range []rune(text) {
		if i > 0 {
			strip = append(strip, make([]byte, gap)...)
		}
		g, _ := font.Glyph(r)
		for col := 0; col < 8; col++ {
			var b byte
			for row := 0; row < 8; row++ {
				if g[row]&(0x80>>col) != 0 {
					b |= 1 << row
				}
			}
			strip = append(strip, b)
		}
	}
	if len(strip) == 0 {
		// An empty text still needs a non-degenerate strip so offset
		// arithmetic stays defined.
		strip = []byte{0}
	}

	return &Scroller{strip: strip, mode: opts.Mode, dir: 1}
}

// Width returns the strip width in columns.
func (s *Scroller) Width() int {
	return len(s.strip)
}

// Offset returns the current column offset into the strip.
func (s *Scroller) Offset() int {
	return s.offset
}

// Finished reports whether a ScrollOnce scroll has run its course.
// Loop and bounce scrolls never finish.
func (s *Scroller) Finished() bool {
	return s.done
}

// Reset rewinds the scroll to the beginning.
func (s *Scroller) Reset() {
	s.offset = 0
	s.dir = 1
	s.done = false
}

// Step advances the scroll by one column and writes the visible window
// into the matrix buffer. It does not flush; the caller decides the
// commit cadence. Once a ScrollOnce scroll has finished, further calls
// are no-ops.
func (s *Scroller) Step(m *Dev) error {
	if s.done {
		return nil
	}

	width := len(s.strip)
	switch s.mode {
	case ScrollLoop:
		s.offset = (s.offset + 1) % width
	case ScrollBounce:
		s.offset += s.dir
		if s.offset >= width-1 {
			s.offset = width - 1
			s.dir = -1
		} else if s.offset <= 0 {
			s.offset = 0
			s.dir = 1
		}
	case ScrollOnce:
		s.offset++
		if s.offset >= width {
			s.offset = width
			s.done = true
		}
	}

	var rows [8]byte
	for dev := 0; dev < m.Devices(); dev++ {
		for i := range rows {
			rows[i] = 0
		}
		for col := 0; col < 8; col++ {
			b := s.column(s.offset + dev*8 + col)
			for row := 0; row < 8; row++ {
				if b&(1<<row) != 0 {
					rows[row] |= 0x80 >> col
				}
			}
		}
		if err := m.WriteGlyph(dev, 0, rows[:]); err != nil {
			return err
		}
	}
	return nil
}

// column returns the strip byte for a window column according to the
// scroll mode: wrapping for loop, reflecting for bounce, blank past
// the end for once.
func (s *Scroller) column(g int) byte {
	width := len(s.strip)
	switch s.mode {
	case ScrollLoop:
		return s.strip[g%width]
	case ScrollBounce:
		if width == 1 {
			return s.strip[0]
		}
		period := 2*width - 2
		idx := g % period
		if idx >= width {
			idx = period - idx
		}
		return s.strip[idx]
	default: // ScrollOnce
		if g >= width {
			return 0
		}
		return s.strip[g]
	}
}

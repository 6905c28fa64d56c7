// Package term is a character cell surface drawn onto a monochrome pixel
// display. Bytes written to it behave like a small glass teletype: newline,
// carriage return, deferred line wrap and scrolling.
package term

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"ttypanel/hal"

	"tinygo.org/x/tinyfont"
)

// Metrics describes a fixed-width font cell in font pixels.
type Metrics struct {
	Height  int16
	Width   int16
	Spacing int16
}

// Font is a tinyfont font that also reports fixed cell metrics.
type Font interface {
	tinyfont.Fonter
	Metrics() (height, width, spacing int16)
	// Baseline is the distance from the top of a cell to the glyph baseline.
	Baseline() int16
}

// MetricsOf returns the cell metrics reported by f.
func MetricsOf(f Font) Metrics {
	h, w, s := f.Metrics()
	return Metrics{Height: h, Width: w, Spacing: s}
}

type Attr uint8

const (
	AttrNormal Attr = iota
	AttrInverse
)

type Cell struct {
	Char byte
	Attr Attr
}

var blank = Cell{Char: ' ', Attr: AttrNormal}

var (
	colorOn  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOff = color.RGBA{A: 0xff}
)

var ErrNoRoom = errors.New("term: display too small for one cell")

// Surface is a grid of cells with a cursor. It is not safe for concurrent
// use.
type Surface struct {
	display hal.Display
	font    Font

	metrics Metrics
	scale   int16
	cellW   int16
	cellH   int16
	cols    int
	rows    int
	cells   []Cell

	col, row    int
	attr        Attr
	pendingWrap bool
	dirty       bool

	scrolls int
}

// New returns a surface using font at scale 1.
func New(display hal.Display, font Font) (*Surface, error) {
	s := &Surface{display: display, font: font}
	if err := s.Configure(MetricsOf(font), 1); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure recomputes the grid for the given font metrics and scale and
// clears it.
func (s *Surface) Configure(m Metrics, scale int16) error {
	if scale < 1 {
		scale = 1
	}
	cellW := m.Width*scale + m.Spacing
	cellH := m.Height * scale
	if cellW <= 0 || cellH <= 0 {
		return fmt.Errorf("term: configure: bad metrics %+v", m)
	}
	w, h := s.display.Size()
	cols := int(w / cellW)
	rows := int(h / cellH)
	if cols < 1 || rows < 1 {
		return fmt.Errorf("%w: %dx%d cell on %dx%d", ErrNoRoom, cellW, cellH, w, h)
	}

	s.metrics = m
	s.scale = scale
	s.cellW, s.cellH = cellW, cellH
	s.cols, s.rows = cols, rows
	s.cells = make([]Cell, cols*rows)
	s.attr = AttrNormal
	s.Clear()
	return nil
}

// Clear blanks every cell and homes the cursor.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.col, s.row = 0, 0
	s.pendingWrap = false
	s.dirty = true
}

// Size returns the grid dimensions in cells.
func (s *Surface) Size() (cols, rows int) { return s.cols, s.rows }

// CellSize returns one cell's size in display pixels.
func (s *Surface) CellSize() (w, h int16) { return s.cellW, s.cellH }

func (s *Surface) Cursor() (col, row int) { return s.col, s.row }

func (s *Surface) Dirty() bool { return s.dirty }

func (s *Surface) SetAttr(a Attr) { s.attr = a }

func (s *Surface) Attr() Attr { return s.attr }

// MoveTo places the cursor, clamped to the grid.
func (s *Surface) MoveTo(col, row int) {
	s.col = clamp(col, 0, s.cols-1)
	s.row = clamp(row, 0, s.rows-1)
	s.pendingWrap = false
}

// Cell returns the cell at col,row; out of range reads as blank.
func (s *Surface) Cell(col, row int) Cell {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return blank
	}
	return s.cells[row*s.cols+col]
}

// Line returns a row's characters with trailing blanks removed.
func (s *Surface) Line(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	buf := make([]byte, s.cols)
	end := 0
	for col := 0; col < s.cols; col++ {
		c := s.cells[row*s.cols+col].Char
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		buf[col] = c
		if c != ' ' {
			end = col + 1
		}
	}
	return string(buf[:end])
}

// Dump writes the grid as text, one line per row.
func (s *Surface) Dump(w io.Writer) error {
	for row := 0; row < s.rows; row++ {
		if _, err := io.WriteString(w, s.Line(row)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte interprets one byte. It never fails.
func (s *Surface) WriteByte(c byte) error {
	switch c {
	case '\n':
		s.pendingWrap = false
		s.lineFeed()
	case '\r':
		s.pendingWrap = false
		s.col = 0
	default:
		if s.pendingWrap {
			s.pendingWrap = false
			s.lineFeed()
		}
		s.cells[s.row*s.cols+s.col] = Cell{Char: c, Attr: s.attr}
		if s.col == s.cols-1 {
			s.pendingWrap = true
		} else {
			s.col++
		}
	}
	s.dirty = true
	return nil
}

func (s *Surface) Write(p []byte) (int, error) {
	for _, c := range p {
		_ = s.WriteByte(c)
	}
	return len(p), nil
}

func (s *Surface) WriteString(str string) (int, error) {
	for i := 0; i < len(str); i++ {
		_ = s.WriteByte(str[i])
	}
	return len(str), nil
}

func (s *Surface) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s, format, args...)
}

func (s *Surface) lineFeed() {
	s.col = 0
	if s.row == s.rows-1 {
		s.ScrollUp()
		return
	}
	s.row++
}

// ScrollUp discards the top row, shifts the rest up and blanks the bottom
// row. The cursor moves to the bottom row.
func (s *Surface) ScrollUp() {
	copy(s.cells, s.cells[s.cols:])
	bottom := s.cells[(s.rows-1)*s.cols:]
	for i := range bottom {
		bottom[i] = blank
	}
	s.row = s.rows - 1
	s.scrolls++
	s.dirty = true
}

// Flush rasterizes the grid and transmits one frame, but only if something
// changed since the last flush.
func (s *Surface) Flush() error {
	if !s.dirty {
		return nil
	}
	s.display.ClearBuffer()
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			if c == blank {
				continue
			}
			s.drawCell(col, row, c)
		}
	}
	if err := s.display.Display(); err != nil {
		return fmt.Errorf("term: flush: %w", err)
	}
	s.dirty = false
	return nil
}

func (s *Surface) drawCell(col, row int, c Cell) {
	x0 := int16(col) * s.cellW
	y0 := int16(row) * s.cellH
	fg := colorOn
	if c.Attr == AttrInverse {
		for y := int16(0); y < s.cellH; y++ {
			for x := int16(0); x < s.cellW; x++ {
				s.display.SetPixel(x0+x, y0+y, colorOn)
			}
		}
		fg = colorOff
	}
	if c.Char == ' ' {
		return
	}
	sd := scaledDisplay{d: s.display, x0: x0, y0: y0, scale: s.scale}
	tinyfont.DrawChar(&sd, s.font, 0, s.font.Baseline(), rune(c.Char), fg)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

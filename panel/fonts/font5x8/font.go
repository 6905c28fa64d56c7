// Package font5x8 is a 5x8 ASCII bitmap font for tinyfont.
package font5x8

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	width   = 5
	height  = 8
	spacing = 1
	first   = 0x20
	last    = 0x7e
)

// Font is the panel font. Glyphs are drawn with their baseline on the
// bottom pixel row, so a cell whose top is at y is drawn at y+7.
//
// Concurrent access is not safe due to internal glyph reuse.
var Font = &font5x8{}

type font5x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	base := glyphIndex(g.r) * width
	for col := 0; col < width; col++ {
		b := glyphData[base+col]
		for row := 0; row < height; row++ {
			if b&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(height-1-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    width,
		Height:   height,
		XAdvance: width + spacing,
		XOffset:  0,
		YOffset:  -(height - 1),
	}
}

func (f *font5x8) GetYAdvance() uint8 { return height }

func (f *font5x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

// Metrics reports glyph height, glyph width and the blank columns between
// glyphs.
func (f *font5x8) Metrics() (h, w, gap int16) { return height, width, spacing }

// Baseline is the offset from the top of a cell to the glyph baseline.
func (f *font5x8) Baseline() int16 { return height - 1 }

// Column returns the pixel column bits of r, bit 0 at the top.
func Column(r rune, col int) byte {
	if col < 0 || col >= width {
		return 0
	}
	return glyphData[glyphIndex(r)*width+col]
}

func glyphIndex(r rune) int {
	if r < first || r > last {
		r = '?'
	}
	return int(r - first)
}

package font5x8

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
)

type pixelSet map[[2]int16]bool

func (p pixelSet) Size() (int16, int16) { return 16, 16 }
func (p pixelSet) SetPixel(x, y int16, _ color.RGBA) {
	p[[2]int16{x, y}] = true
}
func (p pixelSet) Display() error { return nil }

func TestTableCoversPrintableASCII(t *testing.T) {
	require.Len(t, glyphData, (last-first+1)*width)
}

func TestGlyphDrawsAboveBaseline(t *testing.T) {
	px := pixelSet{}
	tinyfont.DrawChar(px, Font, 0, 7, 'I', color.RGBA{255, 255, 255, 255})

	// 'I' is a vertical bar in column 2 spanning rows 0..6.
	for row := int16(0); row < 7; row++ {
		assert.True(t, px[[2]int16{2, row}], "row %d", row)
	}
	for p := range px {
		assert.GreaterOrEqual(t, p[1], int16(0))
		assert.LessOrEqual(t, p[1], int16(7))
		assert.Less(t, p[0], int16(width))
	}
}

func TestUnknownRuneFallsBack(t *testing.T) {
	for col := 0; col < width; col++ {
		assert.Equal(t, Column('?', col), Column('\x01', col))
		assert.Equal(t, Column('?', col), Column('é', col))
	}
	assert.Zero(t, Column('A', width))
}

func TestAdvance(t *testing.T) {
	_, outbox := tinyfont.LineWidth(Font, "0")
	assert.EqualValues(t, width+spacing, outbox)
	h, w, gap := Font.Metrics()
	assert.Equal(t, []int16{8, 5, 1}, []int16{h, w, gap})
}

package term

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// scaledDisplay maps glyph-local font pixels onto scale x scale blocks of
// the real display, offset to a cell origin.
type scaledDisplay struct {
	d      drivers.Displayer
	x0, y0 int16
	scale  int16
}

func (s *scaledDisplay) Size() (x, y int16) { return s.d.Size() }

func (s *scaledDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	px := s.x0 + x*s.scale
	py := s.y0 + y*s.scale
	w, h := s.d.Size()
	for dy := int16(0); dy < s.scale; dy++ {
		for dx := int16(0); dx < s.scale; dx++ {
			if px+dx >= w || py+dy >= h {
				continue
			}
			s.d.SetPixel(px+dx, py+dy, c)
		}
	}
}

func (s *scaledDisplay) Display() error { return nil }

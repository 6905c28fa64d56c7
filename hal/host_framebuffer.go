//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers/pixel"
)

// hostFramebuffer is a monochrome panel. SetPixel draws into the back
// buffer; Display publishes it to the front buffer front-ends read.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int16
	height int16
	back   pixel.Image[pixel.Monochrome]
	front  pixel.Image[pixel.Monochrome]
	frames uint64
}

func newHostFramebuffer(width, height int16) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		back:   pixel.NewImage[pixel.Monochrome](int(width), int(height)),
		front:  pixel.NewImage[pixel.Monochrome](int(width), int(height)),
	}
}

func (f *hostFramebuffer) Size() (x, y int16) { return f.width, f.height }

func (f *hostFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.back.Set(int(x), int(y), pixel.NewMonochrome(c.R, c.G, c.B))
}

func (f *hostFramebuffer) ClearBuffer() {
	f.back.FillSolidColor(false)
}

func (f *hostFramebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front.RawBuffer(), f.back.RawBuffer())
	f.frames++
	return nil
}

func (f *hostFramebuffer) frame(dst []bool) []bool {
	n := int(f.width) * int(f.height)
	if cap(dst) < n {
		dst = make([]bool, n)
	}
	dst = dst[:n]

	f.mu.Lock()
	defer f.mu.Unlock()
	w := int(f.width)
	for y := 0; y < int(f.height); y++ {
		for x := 0; x < w; x++ {
			dst[y*w+x] = bool(f.front.Get(x, y))
		}
	}
	return dst
}

func (f *hostFramebuffer) count() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

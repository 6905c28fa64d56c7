//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"

	"ttypanel/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 6

// RunWindow opens a desktop window showing the panel display and mapping
// the keyboard onto the front panel buttons. run is started on its own
// goroutine; the window closes when it returns.
func RunWindow(ctx context.Context, h *Host, run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	g := &hostGame{h: h, done: done, ctx: ctx}
	ebiten.SetWindowTitle("ttypanel (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(HostDisplayWidth*windowScale, HostDisplayHeight*windowScale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	cancel()
	if err == ebiten.Termination {
		return g.err
	}
	return err
}

type hostGame struct {
	h    *Host
	ctx  context.Context
	done chan error
	err  error

	frame []bool
	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		g.err = err
		return ebiten.Termination
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	pollKeys(g.h)
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, HostDisplayWidth, HostDisplayHeight))
		g.fbImg = ebiten.NewImage(HostDisplayWidth, HostDisplayHeight)
	}
	g.frame = g.h.Frame(g.frame)

	dst := g.img.Pix
	for i, on := range g.frame {
		j := i * 4
		var v byte
		if on {
			v = 0xFF
		}
		// Amber-ish OLED tint.
		dst[j+0] = v
		dst[j+1] = v * 3 / 4
		dst[j+2] = v / 8
		dst[j+3] = 0xFF
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return HostDisplayWidth, HostDisplayHeight
}

// Package app is the panel controller: boot, the pass-through relay loop
// and the menus that interrupt it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ttypanel/hal"
	"ttypanel/panel/browser"
	"ttypanel/panel/buttons"
	"ttypanel/panel/fonts/font5x8"
	"ttypanel/panel/menu"
	"ttypanel/panel/term"
	"ttypanel/panel/transfer"
	"ttypanel/panel/volume"
)

var (
	ErrFault     = errors.New("app: fault")
	ErrNotBooted = errors.New("app: not booted")
)

// Controller owns every panel component. It runs on a single goroutine.
type Controller struct {
	h      hal.HAL
	cfg    Config
	logger hal.Logger

	up   hal.Serial
	down hal.Serial

	input   *buttons.Input
	surface *term.Surface
	engine  *menu.Engine

	vol     volume.Volume
	browser *browser.Browser
	sender  *transfer.Sender

	now         func() time.Time
	sleep       func(time.Duration)
	haltOnFault bool
}

type Option func(*Controller)

// WithClock replaces the time source used for button timing.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSleep replaces every pause: pacing, blinking, splash and idle yields.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithHaltOnFault controls whether a fatal fault blinks forever.
func WithHaltOnFault(halt bool) Option {
	return func(c *Controller) { c.haltOnFault = halt }
}

func New(h hal.HAL, cfg Config, opts ...Option) (*Controller, error) {
	c := &Controller{
		h:           h,
		cfg:         cfg,
		logger:      h.Logger(),
		up:          h.HostLink(),
		down:        h.DeviceLink(),
		now:         time.Now,
		sleep:       time.Sleep,
		haltOnFault: haltOnFault,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = hal.NullLogger()
	}

	surface, err := term.New(h.Display(), font5x8.Font)
	if err != nil {
		return nil, fmt.Errorf("app: display: %w", err)
	}
	if err := surface.Configure(term.MetricsOf(font5x8.Font), cfg.Display.Scale); err != nil {
		return nil, fmt.Errorf("app: display: %w", err)
	}
	c.surface = surface

	input, err := buttons.NewWithClock(h.Buttons(), cfg.Buttons, c.now)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	c.input = input

	c.engine = menu.NewEngine(surface, input,
		menu.WithIdle(c.yield),
		menu.WithLogger(c.logger),
	)
	return c, nil
}

// Config returns the live configuration.
func (c *Controller) Config() Config { return c.cfg }

// Surface exposes the terminal surface for diagnostics.
func (c *Controller) Surface() *term.Surface { return c.surface }

func (c *Controller) yield() { c.sleep(time.Millisecond) }

func (c *Controller) debugf(format string, args ...any) {
	if c.cfg.Debug {
		c.logger.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// Boot brings up the display and storage. A storage failure after every
// retry is fatal: see Fault.
func (c *Controller) Boot() error {
	c.applyBaud()
	if c.cfg.Display.Splash {
		c.splash()
	}

	c.status("SCANNING DRIVE")
	vol, err := c.mount()
	if err != nil {
		c.logger.WriteLineString("app: mount: " + err.Error())
		return c.Fault(faultNoCard, "NO CARD", fmt.Sprintf("ERR %d", volume.Code(err)))
	}
	c.status("MOUNT OK")

	if err := c.attach(vol); err != nil {
		return err
	}
	c.status(freeRAM())
	c.showIdle()
	return nil
}

func (c *Controller) attach(vol volume.Volume) error {
	b, err := browser.New(vol, c.engine,
		browser.WithCapacity(c.cfg.Menu.Capacity),
		browser.WithFilter(c.cfg.Browser.Filter...),
		browser.WithLogger(c.logger),
	)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	c.vol = vol
	c.browser = b
	c.sender = transfer.New(vol, c.down, transfer.ScreenProgress{Surface: c.surface},
		transfer.WithCharDelay(c.cfg.Transfer.CharDelay),
		transfer.WithLineDelay(c.cfg.Transfer.LineDelay),
		transfer.WithChunkSize(c.cfg.Transfer.ChunkSize),
		transfer.WithSleep(c.sleep),
		transfer.WithLogger(c.logger),
	)
	return nil
}

func (c *Controller) mount() (volume.Volume, error) {
	m := c.h.Storage()
	if m == nil {
		return nil, volume.ErrNotMounted
	}
	var err error
	for attempt := 1; attempt <= c.cfg.Mount.Retries; attempt++ {
		var vol volume.Volume
		vol, err = m.Mount()
		if err == nil {
			c.debugf("app: mounted on attempt %d", attempt)
			return vol, nil
		}
		c.logger.WriteLineString(fmt.Sprintf("app: mount attempt %d/%d: %v", attempt, c.cfg.Mount.Retries, err))
		m.Reset()
		c.sleep(c.cfg.Mount.Backoff)
	}
	return nil, err
}

// Step runs one control loop iteration and reports whether a byte was
// relayed. Buttons are only polled when neither direction had data.
func (c *Controller) Step() bool {
	relayed := false
	if c.up.Buffered() > 0 {
		if b, err := c.up.ReadByte(); err == nil {
			if err := c.down.WriteByte(b); err != nil {
				c.debugf("app: relay to device: %v", err)
			}
			relayed = true
		}
	}
	if c.down.Buffered() > 0 {
		if b, err := c.down.ReadByte(); err == nil {
			if err := c.up.WriteByte(b); err != nil {
				c.debugf("app: relay to host: %v", err)
			}
			relayed = true
		}
	}
	if relayed {
		return true
	}

	ev := c.input.Poll()
	if ev.Pressed(buttons.Menu) {
		c.TopMenu()
		c.showIdle()
	}
	return false
}

// Run loops Step until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if c.browser == nil {
		return ErrNotBooted
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !c.Step() {
			c.yield()
		}
	}
}

func (c *Controller) status(s string) {
	c.surface.Clear()
	_, rows := c.surface.Size()
	c.surface.MoveTo(0, rows/2-1)
	_, _ = c.surface.WriteString(s)
	c.flush()
	c.debugf("app: status: %s", s)
	bootStep(s)
}

func (c *Controller) flush() {
	if err := c.surface.Flush(); err != nil {
		c.logger.WriteLineString("app: display: " + err.Error())
	}
}

func (c *Controller) showIdle() {
	c.surface.Clear()
	c.surface.SetAttr(term.AttrInverse)
	_, _ = c.surface.WriteString(" TTY ")
	c.surface.SetAttr(term.AttrNormal)
	c.surface.Printf(" %d BAUD\n\nPASS-THROUGH\nMENU FOR OPTIONS", c.cfg.Serial.Baud)
	c.flush()
}

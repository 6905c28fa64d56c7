package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"ttypanel/hal"
)

// Run boots the panel with the default configuration and relays forever.
func Run(h hal.HAL) {
	_ = RunWithConfig(context.Background(), h, DefaultConfig())
	select {}
}

// RunWithConfig boots and relays until ctx is done. A panic anywhere in
// the panel is logged and reported as a fault.
func RunWithConfig(ctx context.Context, h hal.HAL, cfg Config, opts ...Option) (err error) {
	bootDiagStart(h)

	c, err := New(h, cfg, opts...)
	if err != nil {
		logLine(h, "app: "+err.Error())
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = c.panicked(r)
		}
	}()

	if err := c.Boot(); err != nil {
		return err
	}
	return c.Run(ctx)
}

func (c *Controller) panicked(v any) error {
	c.logger.WriteLineString(fmt.Sprintf("app: panic: %v", v))
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line != "" {
			c.logger.WriteLineString(line)
		}
	}
	return c.Fault(faultPanic, "PANIC", fmt.Sprint(v))
}

func logLine(h hal.HAL, s string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}

//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Duration stops the run after this long; zero runs until ctx ends.
	Duration time.Duration
	// Keys is a button script in ButtonForRune letters; '.' idles one step.
	Keys string
	// KeyInterval is the spacing between script steps.
	KeyInterval time.Duration
	// Hold is how long each scripted press is held.
	Hold time.Duration
}

// RunHeadless runs the panel without any display front-end, optionally
// replaying a button script.
func RunHeadless(ctx context.Context, h *Host, run func(context.Context) error, cfg HeadlessConfig) error {
	if cfg.KeyInterval <= 0 {
		cfg.KeyInterval = 300 * time.Millisecond
	}
	if cfg.Hold <= 0 {
		cfg.Hold = 60 * time.Millisecond
	}
	if cfg.Hold >= cfg.KeyInterval {
		return fmt.Errorf("headless: hold %v must be shorter than interval %v", cfg.Hold, cfg.KeyInterval)
	}
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	if cfg.Keys != "" {
		go replay(ctx, h, cfg)
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if cfg.Duration > 0 && ctx.Err() == context.DeadlineExceeded {
			return nil
		}
		return ctx.Err()
	}
}

func replay(ctx context.Context, h *Host, cfg HeadlessConfig) {
	t := time.NewTicker(cfg.KeyInterval)
	defer t.Stop()
	for _, r := range cfg.Keys {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		i, ok := ButtonForRune(r)
		if !ok {
			continue
		}
		h.SetButton(i, true)
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.Hold):
		}
		h.SetButton(i, false)
	}
}

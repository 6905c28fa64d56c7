//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"ttypanel/app"
	"ttypanel/hal"
	"ttypanel/internal/buildinfo"
	"ttypanel/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type hostFlags struct {
	mode     string
	config   string
	volume   string
	device   string
	verbose  bool
	duration time.Duration
	keys     string
	interval time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f hostFlags
	cmd := &cobra.Command{
		Use:          "ttypanel",
		Short:        "Front panel emulator for a legacy serial terminal link",
		Long:         "ttypanel runs the panel against a host directory as its card and stdin/stdout as the upstream link.",
		Version:      buildinfo.Long(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.mode, "mode", "m", "window", "Front-end: window, tui or headless.")
	fl.StringVarP(&f.config, "config", "c", "", "YAML configuration file.")
	fl.StringVarP(&f.volume, "volume", "v", ".", "Directory served as the storage card.")
	fl.StringVarP(&f.device, "device", "d", "", "Serial device or file used as the device link.")
	fl.BoolVar(&f.verbose, "verbose", false, "Log debug lines.")
	fl.DurationVar(&f.duration, "duration", 0, "Stop headless mode after this long (0 = until interrupted).")
	fl.StringVar(&f.keys, "keys", "", "Headless button script, e.g. \"mjoo\".")
	fl.DurationVar(&f.interval, "key-interval", 0, "Spacing between headless script steps.")
	return cmd
}

func run(ctx context.Context, f hostFlags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if f.verbose || cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
		cfg.Debug = true
	}

	hc := hal.HostConfig{VolumeDir: f.volume}
	if f.mode == "tui" {
		// The terminal belongs to the display.
		log.SetOutput(io.Discard)
		hc.HostIn = strings.NewReader("")
		hc.HostOut = io.Discard
	}
	hc.Logger = hal.NewLogrusLogger(log)

	if f.device != "" {
		dev, err := os.OpenFile(f.device, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("device: %w", err)
		}
		defer func() { _ = dev.Close() }()
		hc.Device = dev
	}

	h := hal.NewHost(hc)
	panel := func(ctx context.Context) error {
		return app.RunWithConfig(ctx, h, cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	switch f.mode {
	case "window":
		err = hal.RunWindow(ctx, h, panel)
	case "tui":
		err = hal.RunTUI(ctx, h, panel)
	case "headless":
		err = hal.RunHeadless(ctx, h, panel, hal.HeadlessConfig{
			Duration:    f.duration,
			Keys:        f.keys,
			KeyInterval: f.interval,
		})
	default:
		return fmt.Errorf("unknown mode %q", f.mode)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

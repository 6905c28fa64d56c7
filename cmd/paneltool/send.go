package main

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"time"

	"ttypanel/hal"
	"ttypanel/panel/transfer"
	"ttypanel/panel/volume"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	card      string
	out       string
	charDelay time.Duration
	lineDelay time.Duration
	chunk     int
}

func newSendCmd() *cobra.Command {
	f := sendFlags{
		card:      ".",
		charDelay: transfer.DefaultCharDelay,
		lineDelay: transfer.DefaultLineDelay,
		chunk:     transfer.DefaultChunkSize,
	}
	cmd := &cobra.Command{
		Use:   "send <path>",
		Short: "Stream a card file with panel pacing",
		Long:  "send streams a file from the card directory with the same per-character and per-line pacing the panel uses. The path is relative to the card root.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			return sendFile(f, args[0], hal.NewLogrusLogger(log))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.card, "card", f.card, "Directory served as the card.")
	fl.StringVarP(&f.out, "out", "o", "", "Serial device or file to write to (default stdout).")
	fl.DurationVar(&f.charDelay, "char-delay", f.charDelay, "Pause after each byte.")
	fl.DurationVar(&f.lineDelay, "line-delay", f.lineDelay, "Pause after each line end.")
	fl.IntVar(&f.chunk, "chunk", f.chunk, "Read chunk size.")
	return cmd
}

func sendFile(f sendFlags, name string, logger hal.Logger) error {
	vol, err := volume.DirMounter(f.card).Mount()
	if err != nil {
		return err
	}

	dst := os.Stdout
	if f.out != "" {
		dst, err = os.OpenFile(f.out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}
		defer func() { _ = dst.Close() }()
	}
	w := bufio.NewWriter(dst)

	full := path.Clean(volume.Join(vol.Root(), name))
	s := transfer.New(vol, w, transfer.LogProgress{Logger: logger},
		transfer.WithCharDelay(f.charDelay),
		transfer.WithLineDelay(f.lineDelay),
		transfer.WithChunkSize(f.chunk),
		transfer.WithSleep(func(d time.Duration) {
			if d <= 0 {
				return
			}
			_ = w.Flush()
			time.Sleep(d)
		}),
		transfer.WithLogger(logger),
	)
	res, err := s.Send(path.Dir(full), path.Base(full))
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	logger.WriteLineString(fmt.Sprintf("send: %s of %s", humanize.Comma(res.Bytes), humanize.Bytes(uint64(res.Total))))
	return nil
}

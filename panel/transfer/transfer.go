// Package transfer streams a file to the serial device with paper-tape
// pacing: a short pause after every character and a longer one after every
// line end.
package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"ttypanel/hal"
	"ttypanel/panel/volume"
)

const (
	DefaultCharDelay = 10 * time.Millisecond
	DefaultLineDelay = 100 * time.Millisecond
	DefaultChunkSize = 128

	minChunkSize = 16
)

// ErrOpen marks a transfer that failed before the first byte was read.
var ErrOpen = errors.New("transfer: open")

// Progress shows how far a transfer has come.
type Progress interface {
	Draw(name string, percent int) error
}

// Result summarizes one transfer.
type Result struct {
	Bytes int64
	Total int64
	Draws int
}

type Sender struct {
	vol       volume.Volume
	out       io.ByteWriter
	progress  Progress
	charDelay time.Duration
	lineDelay time.Duration
	chunk     int
	sleep     func(time.Duration)
	logger    hal.Logger
}

type Option func(*Sender)

func WithCharDelay(d time.Duration) Option { return func(s *Sender) { s.charDelay = d } }
func WithLineDelay(d time.Duration) Option { return func(s *Sender) { s.lineDelay = d } }

func WithChunkSize(n int) Option {
	return func(s *Sender) { s.chunk = max(n, minChunkSize) }
}

func WithSleep(fn func(time.Duration)) Option {
	return func(s *Sender) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

func WithLogger(l hal.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(vol volume.Volume, out io.ByteWriter, progress Progress, opts ...Option) *Sender {
	s := &Sender{
		vol:       vol,
		out:       out,
		progress:  progress,
		charDelay: DefaultCharDelay,
		lineDelay: DefaultLineDelay,
		chunk:     DefaultChunkSize,
		sleep:     time.Sleep,
		logger:    hal.NullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDelays changes the pacing for later transfers.
func (s *Sender) SetDelays(char, line time.Duration) {
	s.charDelay = char
	s.lineDelay = line
}

func (s *Sender) Delays() (char, line time.Duration) { return s.charDelay, s.lineDelay }

// Send streams dir/name to the output. The file is opened before anything
// is read or written; an open failure wraps both ErrOpen and the storage
// error.
func (s *Sender) Send(dir, name string) (Result, error) {
	path := volume.Join(dir, name)
	f, err := s.vol.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	res := Result{Total: f.Size()}
	s.logger.WriteLineString(fmt.Sprintf("transfer: %s: %d bytes", path, res.Total))

	last := -1
	draw := func(pct int) {
		if pct == last {
			return
		}
		last = pct
		res.Draws++
		if s.progress == nil {
			return
		}
		if err := s.progress.Draw(name, pct); err != nil {
			s.logger.WriteLineString("transfer: progress: " + err.Error())
		}
	}

	r := bufio.NewReaderSize(f, s.chunk)
	for {
		chunk, rerr := r.ReadSlice('\n')
		for _, c := range chunk {
			if err := s.out.WriteByte(c); err != nil {
				return res, fmt.Errorf("transfer: write %s at %d: %w", path, res.Bytes, err)
			}
			res.Bytes++
			if c == '\n' || c == '\r' {
				s.sleep(s.lineDelay)
			} else {
				s.sleep(s.charDelay)
			}
		}
		if len(chunk) > 0 && res.Total > 0 {
			draw(percent(res.Bytes, res.Total))
		}
		if rerr == nil || errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		return res, fmt.Errorf("transfer: read %s at %d: %w", path, res.Bytes, rerr)
	}

	draw(100)
	s.logger.WriteLineString(fmt.Sprintf("transfer: %s: sent %d bytes", path, res.Bytes))
	return res, nil
}

func percent(sent, total int64) int {
	if total <= 0 || sent >= total {
		return 100
	}
	return int(sent * 100 / total)
}

//go:build !tinygo

package hal

import (
	"io"
	"sync"
)

const streamBuffer = 4096

// streamSerial adapts a blocking reader and writer to the non-blocking
// Serial contract. A goroutine drains the reader into a channel.
type streamSerial struct {
	mu   sync.Mutex
	w    io.Writer
	in   chan byte
	baud uint32
	err  error
}

func newStreamSerial(r io.Reader, w io.Writer) *streamSerial {
	s := &streamSerial{w: w, in: make(chan byte, streamBuffer)}
	if r != nil {
		go s.pump(r)
	}
	return s
}

func (s *streamSerial) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			s.in <- b
		}
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
	}
}

func (s *streamSerial) WriteByte(b byte) error {
	if s.w == nil {
		return ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write([]byte{b})
	return err
}

func (s *streamSerial) ReadByte() (byte, error) {
	select {
	case b := <-s.in:
		return b, nil
	default:
		return 0, ErrNoData
	}
}

func (s *streamSerial) Buffered() int { return len(s.in) }

func (s *streamSerial) SetBaudRate(br uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baud = br
}

// Baud is the last rate set with SetBaudRate.
func (s *streamSerial) Baud() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baud
}

// Err reports why the reader stopped, if it did.
func (s *streamSerial) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// boardPin is a GPIO input line.
type boardPin struct {
	name string
	pin  machine.Pin
}

func (p *boardPin) Name() string { return p.name }

func (p *boardPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return errors.New("gpio: " + p.name + ": output unsupported")
	}
	m := machine.PinInput
	switch pull {
	case GPIOPullUp:
		m = machine.PinInputPullup
	case GPIOPullDown:
		m = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *boardPin) Read() (bool, error) { return p.pin.Get(), nil }

type serialLogger struct {
	s Serial
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		_ = l.s.WriteByte(s[i])
	}
	_ = l.s.WriteByte('\r')
	_ = l.s.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		_ = l.s.WriteByte(b[i])
	}
	_ = l.s.WriteByte('\r')
	_ = l.s.WriteByte('\n')
}

package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
}

// VirtualPin is a software pin. An external driver (a host keyboard, a test)
// can pull it to a level; otherwise it reads its pull resistor.
type VirtualPin struct {
	mu         sync.Mutex
	name       string
	caps       GPIOCaps
	mode       GPIOMode
	pull       GPIOPull
	configured bool

	driven bool
	level  bool
}

// NewVirtualPin returns an unconfigured virtual pin.
func NewVirtualPin(name string, caps GPIOCaps) *VirtualPin {
	return &VirtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

// NewButtonPin returns a virtual input pin suitable for an active-low button.
func NewButtonPin(name string) *VirtualPin {
	return NewVirtualPin(name, GPIOCapInput|GPIOCapPullUp)
}

func (p *VirtualPin) Name() string   { return p.name }
func (p *VirtualPin) Caps() GPIOCaps { return p.caps }

func (p *VirtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	p.configured = true
	return nil
}

func (p *VirtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.driven {
		return p.level, nil
	}
	switch p.pull {
	case GPIOPullUp:
		return true, nil
	case GPIOPullDown:
		return false, nil
	}
	return p.level, nil
}

// Drive forces the pin to level until Release is called.
func (p *VirtualPin) Drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.driven = true
	p.level = level
}

// Release stops driving the pin so it floats back to its pull level.
func (p *VirtualPin) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.driven = false
}

// SetPressed drives an active-low button line: pressed pulls it to ground.
func (p *VirtualPin) SetPressed(pressed bool) {
	if pressed {
		p.Drive(false)
		return
	}
	p.Release()
}

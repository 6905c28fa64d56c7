// Package buttons turns raw active-low button lines into debounced press
// and auto-repeat events.
package buttons

import (
	"errors"
	"fmt"
	"time"

	"ttypanel/hal"
)

// ID names a logical front panel button.
type ID uint8

const (
	Menu ID = iota
	Prev
	Confirm
	Next
	Cancel

	Count = int(hal.ButtonCount)
)

var idNames = [Count]string{"MENU", "PREV", "CONFIRM", "NEXT", "CANCEL"}

func (id ID) String() string {
	if int(id) < Count {
		return idNames[id]
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Event is what a single poll reports for one button.
type Event uint8

const (
	None Event = iota
	Pressed
	Repeat
)

// Events holds one event per button, indexed by ID.
type Events [Count]Event

func (e Events) Pressed(id ID) bool { return e[id] == Pressed }
func (e Events) Repeat(id ID) bool  { return e[id] == Repeat }

// Active reports a press or an auto-repeat.
func (e Events) Active(id ID) bool { return e[id] != None }

func (e Events) Any() bool {
	for _, ev := range e {
		if ev != None {
			return true
		}
	}
	return false
}

// Timing controls debounce and auto-repeat.
type Timing struct {
	Debounce       time.Duration `yaml:"debounce" validate:"gte=0"`
	FirstRepeat    time.Duration `yaml:"first_repeat" validate:"gt=0"`
	RepeatInterval time.Duration `yaml:"repeat_interval" validate:"gt=0"`
}

func DefaultTiming() Timing {
	return Timing{
		Debounce:       20 * time.Millisecond,
		FirstRepeat:    500 * time.Millisecond,
		RepeatInterval: 150 * time.Millisecond,
	}
}

var ErrNoPin = errors.New("buttons: missing pin")

type channel struct {
	pin       hal.GPIOPin
	stable    bool
	raw       bool
	edge      time.Time
	lastEmit  time.Time
	repeating bool
}

// Input tracks every button. It is not safe for concurrent use.
type Input struct {
	timing Timing
	now    func() time.Time
	ch     [Count]channel
}

func New(pins hal.ButtonPins, timing Timing) (*Input, error) {
	return NewWithClock(pins, timing, time.Now)
}

// NewWithClock is New with an injected time source.
func NewWithClock(pins hal.ButtonPins, timing Timing, now func() time.Time) (*Input, error) {
	if now == nil {
		now = time.Now
	}
	in := &Input{timing: timing, now: now}
	t := now()
	for i, pin := range pins {
		if pin == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoPin, ID(i))
		}
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("buttons: configure %s: %w", ID(i), err)
		}
		in.ch[i] = channel{pin: pin, edge: t, lastEmit: t}
	}
	return in, nil
}

// Poll samples every line once and reports at most one event per button.
// It never blocks.
func (in *Input) Poll() Events {
	var ev Events
	now := in.now()
	for i := range in.ch {
		ev[i] = in.ch[i].step(now, in.timing)
	}
	return ev
}

func (c *channel) step(now time.Time, t Timing) Event {
	level, err := c.pin.Read()
	if err != nil {
		return None
	}
	raw := !level

	if raw != c.raw {
		c.raw = raw
		c.edge = now
	}

	if now.Sub(c.edge) >= t.Debounce && c.raw != c.stable {
		c.stable = c.raw
		c.lastEmit = now
		c.repeating = false
		if c.stable {
			return Pressed
		}
		return None
	}

	if c.stable {
		delay := t.FirstRepeat
		if c.repeating {
			delay = t.RepeatInterval
		}
		if now.Sub(c.lastEmit) >= delay {
			c.repeating = true
			c.lastEmit = now
			return Repeat
		}
	}
	return None
}

// Stable reports the debounced state of a button.
func (in *Input) Stable(id ID) bool {
	if int(id) >= Count {
		return false
	}
	return in.ch[id].stable
}

// SetTiming replaces the debounce and repeat timing.
func (in *Input) SetTiming(t Timing) { in.timing = t }

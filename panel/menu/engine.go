package menu

import (
	"strings"

	"ttypanel/hal"
	"ttypanel/panel/buttons"
)

// Poller yields one round of button events per call without blocking.
type Poller interface {
	Poll() buttons.Events
}

// Screen is the text surface a menu renders onto.
type Screen interface {
	Clear()
	WriteString(s string) (int, error)
	Flush() error
	Size() (cols, rows int)
}

type Engine struct {
	screen Screen
	poller Poller
	idle   func()
	logger hal.Logger

	selMark   string
	plainMark string
	dirMark   string
}

type Option func(*Engine)

// WithIdle sets a hook run once per loop iteration.
func WithIdle(fn func()) Option {
	return func(e *Engine) { e.idle = fn }
}

// WithMarkers overrides the selection prefix and the directory suffix.
func WithMarkers(selected, dir string) Option {
	return func(e *Engine) {
		e.selMark = selected
		e.plainMark = strings.Repeat(" ", len(selected))
		e.dirMark = dir
	}
}

func WithLogger(l hal.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(screen Screen, poller Poller, opts ...Option) *Engine {
	e := &Engine{
		screen:    screen,
		poller:    poller,
		logger:    hal.NullLogger(),
		selMark:   "> ",
		plainMark: "  ",
		dirMark:   "/",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Screen() Screen { return e.screen }

// Select runs the navigation loop over l until Confirm or Cancel is
// pressed. It returns the chosen index, or -1 on cancel or an empty list.
func (e *Engine) Select(l *List) int {
	count := l.Len()
	_, rows := e.screen.Size()
	visible := min(rows, count)
	clampWindow(l, visible)

	redraw := true
	for {
		if redraw {
			e.render(l, visible)
			redraw = false
		}
		if e.idle != nil {
			e.idle()
		}

		ev := e.poller.Poll()
		switch {
		case ev.Pressed(buttons.Cancel):
			return -1
		case ev.Pressed(buttons.Confirm):
			if count == 0 {
				return -1
			}
			return l.Selected
		case ev.Active(buttons.Prev):
			if l.Selected > 0 {
				l.Selected--
				if l.Selected < l.Top {
					l.Top--
				}
				redraw = true
			}
		case ev.Active(buttons.Next):
			if l.Selected < count-1 {
				l.Selected++
				if l.Selected >= l.Top+visible {
					l.Top++
				}
				redraw = true
			}
		}
	}
}

func clampWindow(l *List, visible int) {
	count := l.Len()
	if count == 0 {
		l.Selected, l.Top = 0, 0
		return
	}
	l.Selected = max(0, min(l.Selected, count-1))
	if l.Top > l.Selected {
		l.Top = l.Selected
	}
	if l.Selected >= l.Top+visible {
		l.Top = l.Selected - visible + 1
	}
	l.Top = max(0, l.Top)
}

func (e *Engine) render(l *List, visible int) {
	cols, _ := e.screen.Size()
	e.screen.Clear()
	for i := 0; i < visible; i++ {
		if i > 0 {
			_, _ = e.screen.WriteString("\n")
		}
		idx := l.Top + i
		_, _ = e.screen.WriteString(e.line(l.Items[idx], idx == l.Selected, cols))
	}
	if err := e.screen.Flush(); err != nil {
		e.logger.WriteLineString("menu: flush: " + err.Error())
	}
}

func (e *Engine) line(it Item, selected bool, cols int) string {
	mark := e.plainMark
	if selected {
		mark = e.selMark
	}
	label := it.Label
	suffix := ""
	if it.Dir {
		suffix = e.dirMark
	}
	room := cols - len(mark) - len(suffix)
	if room < 0 {
		room = 0
	}
	if len(label) > room {
		label = label[:room]
	}
	s := mark + label + suffix
	if len(s) > cols {
		s = s[:cols]
	}
	return s
}

// Message replaces the screen contents with lines.
func (e *Engine) Message(lines ...string) {
	e.screen.Clear()
	_, _ = e.screen.WriteString(strings.Join(lines, "\n"))
	if err := e.screen.Flush(); err != nil {
		e.logger.WriteLineString("menu: flush: " + err.Error())
	}
}

// WaitAny blocks until Confirm or Cancel is pressed and reports which.
func (e *Engine) WaitAny() buttons.ID {
	for {
		if e.idle != nil {
			e.idle()
		}
		ev := e.poller.Poll()
		if ev.Pressed(buttons.Confirm) {
			return buttons.Confirm
		}
		if ev.Pressed(buttons.Cancel) {
			return buttons.Cancel
		}
	}
}

// Alert shows lines and waits for acknowledgement.
func (e *Engine) Alert(lines ...string) buttons.ID {
	e.Message(lines...)
	return e.WaitAny()
}

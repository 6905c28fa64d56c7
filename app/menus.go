package app

import (
	"errors"
	"fmt"
	"time"

	"ttypanel/hal"
	"ttypanel/internal/buildinfo"
	"ttypanel/panel/browser"
	"ttypanel/panel/menu"
	"ttypanel/panel/transfer"
	"ttypanel/panel/volume"
)

const (
	ScreenSettings menu.ScreenID = iota + 1
	ScreenAbout
)

// Delay choices offered in the settings screen.
var (
	CharDelays = []time.Duration{0, 2 * time.Millisecond, 5 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond, 50 * time.Millisecond}
	LineDelays = []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}
)

// TopMenu runs the menu reached from pass-through. It returns when the
// user exits.
func (c *Controller) TopMenu() {
	if c.vol == nil {
		return
	}
	l := menu.NewList(4)
	l.Add(menu.Item{Label: "SEND FILE", Action: menu.DescendTo(c.vol.Root())})
	l.Add(menu.Item{Label: "SETTINGS", Action: menu.ScreenAction(ScreenSettings)})
	l.Add(menu.Item{Label: "ABOUT", Action: menu.ScreenAction(ScreenAbout)})
	l.Add(menu.Item{Label: "EXIT", Action: menu.LeafAction()})

	for {
		idx := c.engine.Select(l)
		if idx < 0 {
			return
		}
		it := l.Items[idx]
		switch it.Action.Kind {
		case menu.Descend:
			c.sendFlow(it.Action.Path)
		case menu.InvokeScreen:
			c.screen(it.Action.Screen)
		case menu.Leaf:
			return
		case menu.OpenFile:
			c.send(browser.Selection{Dir: volume.Parent(it.Action.Path, c.vol.Root()), Name: it.Label})
		}
	}
}

func (c *Controller) screen(id menu.ScreenID) {
	switch id {
	case ScreenSettings:
		c.settings()
	case ScreenAbout:
		c.about()
	default:
		c.logger.WriteLineString(fmt.Sprintf("app: unknown screen %d", id))
	}
}

// sendFlow browses from dir and sends the chosen file. After each send
// browsing resumes in the directory the file came from.
func (c *Controller) sendFlow(dir string) {
	for {
		sel, err := c.browser.Browse(dir)
		if err != nil {
			if !errors.Is(err, browser.ErrCancelled) {
				c.debugf("app: browse: %v", err)
			}
			return
		}
		c.send(sel)
		dir = sel.Dir
	}
}

func (c *Controller) send(sel browser.Selection) {
	res, err := c.sender.Send(sel.Dir, sel.Name)
	switch {
	case errors.Is(err, transfer.ErrOpen):
		c.engine.Alert(fmt.Sprintf("OPEN ERR %d", volume.Code(err)), sel.Name)
	case err != nil:
		c.logger.WriteLineString("app: send: " + err.Error())
		c.engine.Alert("SEND FAILED", sel.Name, fmt.Sprintf("AT %d/%d", res.Bytes, res.Total))
	default:
		c.engine.Alert("DONE", sel.Name, fmt.Sprintf("%d BYTES", res.Bytes))
	}
}

func (c *Controller) settings() {
	l := menu.NewList(4)
	for {
		l.Reset()
		l.Add(menu.Item{Label: fmt.Sprintf("BAUD %d", c.cfg.Serial.Baud)})
		l.Add(menu.Item{Label: "CHAR " + fmtDelay(c.cfg.Transfer.CharDelay)})
		l.Add(menu.Item{Label: "LINE " + fmtDelay(c.cfg.Transfer.LineDelay)})
		l.Add(menu.Item{Label: "BACK"})

		switch c.engine.Select(l) {
		case 0:
			if v, ok := c.pickBaud(); ok {
				c.cfg.Serial.Baud = v
				c.applyBaud()
			}
		case 1:
			if v, ok := c.pickDelay("CHAR DELAY", CharDelays, c.cfg.Transfer.CharDelay); ok {
				c.cfg.Transfer.CharDelay = v
				c.applyDelays()
			}
		case 2:
			if v, ok := c.pickDelay("LINE DELAY", LineDelays, c.cfg.Transfer.LineDelay); ok {
				c.cfg.Transfer.LineDelay = v
				c.applyDelays()
			}
		default:
			return
		}
	}
}

func (c *Controller) pickBaud() (uint32, bool) {
	l := menu.NewList(len(BaudRates))
	for i, b := range BaudRates {
		l.Add(menu.Item{Label: fmt.Sprint(b)})
		if b == c.cfg.Serial.Baud {
			l.Selected = i
		}
	}
	idx := c.engine.Select(l)
	if idx < 0 {
		return 0, false
	}
	return BaudRates[idx], true
}

func (c *Controller) pickDelay(title string, choices []time.Duration, cur time.Duration) (time.Duration, bool) {
	l := menu.NewList(len(choices))
	for i, d := range choices {
		l.Add(menu.Item{Label: fmtDelay(d)})
		if d == cur {
			l.Selected = i
		}
	}
	c.debugf("app: %s: current %s", title, fmtDelay(cur))
	idx := c.engine.Select(l)
	if idx < 0 {
		return 0, false
	}
	return choices[idx], true
}

func (c *Controller) applyBaud() {
	if bs, ok := c.down.(hal.BaudSetter); ok {
		bs.SetBaudRate(c.cfg.Serial.Baud)
	}
	c.debugf("app: baud %d", c.cfg.Serial.Baud)
}

func (c *Controller) applyDelays() {
	if c.sender != nil {
		c.sender.SetDelays(c.cfg.Transfer.CharDelay, c.cfg.Transfer.LineDelay)
	}
}

func (c *Controller) about() {
	cols, rows := c.surface.Size()
	c.engine.Alert(
		"TTYPANEL",
		buildinfo.Short(),
		fmt.Sprintf("%dx%d %d BAUD", cols, rows, c.cfg.Serial.Baud),
		fmt.Sprintf("C%s L%s", fmtDelay(c.cfg.Transfer.CharDelay), fmtDelay(c.cfg.Transfer.LineDelay)),
	)
}

func fmtDelay(d time.Duration) string {
	return fmt.Sprintf("%dMS", d.Milliseconds())
}

package app

import (
	"time"

	"ttypanel/panel/term"
)

const splashHold = 800 * time.Millisecond

var splashWords = []string{"TTYPANEL", "SSD1306", "DISPLAY", "DRIVER"}

// splash cycles the boot banner, alternating inverse and normal video.
func (c *Controller) splash() {
	cols, rows := c.surface.Size()
	for i, w := range splashWords {
		c.surface.Clear()
		if i%2 == 0 {
			c.surface.SetAttr(term.AttrInverse)
		}
		col := (cols - len(w)) / 2
		if col < 0 {
			col = 0
		}
		c.surface.MoveTo(col, rows/2-1)
		_, _ = c.surface.WriteString(w)
		c.surface.SetAttr(term.AttrNormal)
		c.flush()
		c.sleep(splashHold)
	}
}

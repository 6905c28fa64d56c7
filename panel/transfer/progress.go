package transfer

import (
	"fmt"
	"strings"

	"ttypanel/hal"
	"ttypanel/panel/term"
)

// Surface is the part of a terminal surface the progress screen uses.
type Surface interface {
	Clear()
	WriteString(s string) (int, error)
	SetAttr(a term.Attr)
	Flush() error
	Size() (cols, rows int)
}

// ScreenProgress draws the transfer screen: a title, the file name, the
// percentage and a bar of inverse cells.
type ScreenProgress struct {
	Surface Surface
}

func (p ScreenProgress) Draw(name string, pct int) error {
	s := p.Surface
	cols, _ := s.Size()
	if len(name) > cols {
		name = name[:cols]
	}
	pct = max(0, min(pct, 100))
	filled := pct * cols / 100

	s.Clear()
	s.SetAttr(term.AttrNormal)
	_, _ = s.WriteString("SENDING\n" + name + "\n" + fmt.Sprintf("%3d%%", pct) + "\n")
	s.SetAttr(term.AttrInverse)
	_, _ = s.WriteString(strings.Repeat(" ", filled))
	s.SetAttr(term.AttrNormal)
	_, _ = s.WriteString(strings.Repeat("-", cols-filled))
	return s.Flush()
}

// LogProgress reports progress as log lines.
type LogProgress struct {
	Logger hal.Logger
}

func (p LogProgress) Draw(name string, pct int) error {
	p.Logger.WriteLineString(fmt.Sprintf("transfer: %s %3d%%", name, pct))
	return nil
}

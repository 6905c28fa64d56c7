//go:build bootdebug

package app

import (
	"sync"
	"time"

	"ttypanel/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

func bootStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
}

// bootDiagStart repeats the latest boot step on the logger so a late
// serial monitor still sees where boot stalled.
func bootDiagStart(h hal.HAL) {
	if h == nil || h.Logger() == nil {
		return
	}
	l := h.Logger()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			l.WriteLineString("bootdiag: " + step)
			time.Sleep(250 * time.Millisecond)
		}
	}()
}

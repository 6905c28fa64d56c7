package app

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	faultNoCard = 2
	faultPanic  = 5

	blinkOn    = 150 * time.Millisecond
	blinkOff   = 250 * time.Millisecond
	blinkPause = time.Second
)

// Fault shows lines and blinks the LED count times. When the controller
// halts on faults it repeats the pattern forever; otherwise it returns
// ErrFault after one round.
func (c *Controller) Fault(count int, lines ...string) error {
	c.engine.Message(lines...)
	for {
		c.blink(count)
		if !c.haltOnFault {
			return fmt.Errorf("%w: %s", ErrFault, strings.Join(lines, " "))
		}
	}
}

func (c *Controller) blink(count int) {
	led := c.h.LED()
	if led == nil {
		c.sleep(blinkPause)
		return
	}
	for i := 0; i < count; i++ {
		led.High()
		c.sleep(blinkOn)
		led.Low()
		c.sleep(blinkOff)
	}
	c.sleep(blinkPause)
}

func freeRAM() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	free := ms.Sys - ms.HeapInuse
	if ms.HeapInuse > ms.Sys {
		free = 0
	}
	return fmt.Sprintf("FREE RAM: %dK", free/1024)
}

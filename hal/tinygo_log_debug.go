//go:build tinygo && baremetal && paneldebug

package hal

import "machine"

// Debug builds interleave log lines with pass-through data on USB.
func newLogger() Logger { return &serialLogger{s: machine.Serial} }

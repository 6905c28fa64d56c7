//go:build tinygo && baremetal && !paneldebug

package hal

// The USB link carries pass-through data; release builds log nothing.
func newLogger() Logger { return NullLogger() }

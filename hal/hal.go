package hal

import (
	"errors"

	"ttypanel/panel/volume"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
//
// Lines follow the "component: message" convention.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoData         = errors.New("no data")
)

// Display is a monochrome pixel surface with a full-frame transmit.
//
// SetPixel only touches the local buffer; Display sends the whole frame.
type Display interface {
	drivers.Displayer
	ClearBuffer()
}

// Serial is a byte-oriented UART-like transport.
//
// ReadByte returns an error when nothing is buffered; it never blocks.
type Serial interface {
	WriteByte(b byte) error
	ReadByte() (byte, error)
	Buffered() int
}

// BaudSetter is implemented by serial transports whose line rate can change
// at runtime.
type BaudSetter interface {
	SetBaudRate(br uint32)
}

// ButtonCount is the number of front panel buttons.
const ButtonCount = 5

// ButtonPins lists the front panel button lines in logical order:
// menu, previous (rewind), confirm (play), next (fast forward), cancel (record).
type ButtonPins [ButtonCount]GPIOPin

// HAL provides the only contact point between the panel and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Buttons() ButtonPins
	Display() Display
	Storage() volume.Mounter
	// HostLink is the upstream link (USB on hardware).
	HostLink() Serial
	// DeviceLink is the UART wired to the legacy device.
	DeviceLink() Serial
}

type nullLogger struct{}

func (nullLogger) WriteLineString(string) {}
func (nullLogger) WriteLineBytes([]byte)  {}

// NullLogger discards every line.
func NullLogger() Logger { return nullLogger{} }

type nullSerial struct{}

func (nullSerial) WriteByte(byte) error    { return nil }
func (nullSerial) ReadByte() (byte, error) { return 0, ErrNoData }
func (nullSerial) Buffered() int           { return 0 }

// NullSerial is a transport that swallows writes and never has input.
func NullSerial() Serial { return nullSerial{} }

//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"ttypanel/panel/volume"
)

// Host display geometry matches the SSD1306 module on the board.
const (
	HostDisplayWidth  = 128
	HostDisplayHeight = 64
)

// HostConfig wires the emulated panel to the host machine.
type HostConfig struct {
	// VolumeDir is the directory mounted as the storage volume.
	VolumeDir string
	// HostIn and HostOut carry the upstream link (stdin/stdout by default).
	HostIn  io.Reader
	HostOut io.Writer
	// Device is the legacy device link; nil leaves it unconnected.
	Device io.ReadWriter
	Logger Logger
}

// Host is the desktop HAL. Front-ends reach into it to press buttons and
// read back frames.
type Host struct {
	logger  Logger
	led     *hostLED
	pins    [ButtonCount]*VirtualPin
	fb      *hostFramebuffer
	storage volume.Mounter
	up      *streamSerial
	down    Serial
}

var buttonNames = [ButtonCount]string{"MENU", "REWIND", "PLAY", "FF", "RECORD"}

// NewHost returns a host HAL built from cfg.
func NewHost(cfg HostConfig) *Host {
	logger := cfg.Logger
	if logger == nil {
		logger = &hostLogger{w: os.Stderr}
	}
	in := cfg.HostIn
	if in == nil {
		in = os.Stdin
	}
	out := cfg.HostOut
	if out == nil {
		out = os.Stdout
	}
	dir := cfg.VolumeDir
	if dir == "" {
		dir = "."
	}

	h := &Host{
		logger:  logger,
		led:     &hostLED{logger: logger},
		fb:      newHostFramebuffer(HostDisplayWidth, HostDisplayHeight),
		storage: volume.DirMounter(dir),
		up:      newStreamSerial(in, out),
		down:    NullSerial(),
	}
	if cfg.Device != nil {
		h.down = newStreamSerial(cfg.Device, cfg.Device)
	}
	for i := range h.pins {
		h.pins[i] = NewButtonPin(buttonNames[i])
	}
	return h
}

func (h *Host) Logger() Logger          { return h.logger }
func (h *Host) LED() LED                { return h.led }
func (h *Host) Display() Display        { return h.fb }
func (h *Host) Storage() volume.Mounter { return h.storage }
func (h *Host) HostLink() Serial        { return h.up }
func (h *Host) DeviceLink() Serial      { return h.down }

func (h *Host) Buttons() ButtonPins {
	var pins ButtonPins
	for i, p := range h.pins {
		pins[i] = p
	}
	return pins
}

// Button returns the virtual pin behind button i.
func (h *Host) Button(i int) *VirtualPin { return h.pins[i] }

// SetButton presses or releases button i.
func (h *Host) SetButton(i int, pressed bool) {
	if i < 0 || i >= ButtonCount {
		return
	}
	h.pins[i].SetPressed(pressed)
}

// Frame copies the last transmitted frame into dst, one bool per pixel in
// row-major order, growing it as needed.
func (h *Host) Frame(dst []bool) []bool { return h.fb.frame(dst) }

// Frames counts transmitted frames.
func (h *Host) Frames() uint64 { return h.fb.count() }

// LEDOn reports the LED state.
func (h *Host) LEDOn() bool { return h.led.state() }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, s+"\n")
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
	_, _ = l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger Logger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}

func (l *hostLED) state() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

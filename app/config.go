package app

import (
	"time"

	"ttypanel/panel/browser"
	"ttypanel/panel/buttons"
	"ttypanel/panel/transfer"
)

// Config is everything the panel can be tuned with. Hardware builds use
// DefaultConfig; the host emulator loads overrides from YAML.
type Config struct {
	Buttons  buttons.Timing `yaml:"buttons"`
	Transfer TransferConfig `yaml:"transfer"`
	Display  DisplayConfig  `yaml:"display"`
	Menu     MenuConfig     `yaml:"menu"`
	Browser  BrowserConfig  `yaml:"browser"`
	Serial   SerialConfig   `yaml:"serial"`
	Mount    MountConfig    `yaml:"mount"`
	Debug    bool           `yaml:"debug"`
}

type TransferConfig struct {
	CharDelay time.Duration `yaml:"char_delay" validate:"gte=0,lte=10s"`
	LineDelay time.Duration `yaml:"line_delay" validate:"gte=0,lte=10s"`
	ChunkSize int           `yaml:"chunk_size" validate:"min=16,max=4096"`
}

type DisplayConfig struct {
	Scale  int16 `yaml:"scale" validate:"min=1,max=4"`
	Splash bool  `yaml:"splash"`
}

type MenuConfig struct {
	Capacity int `yaml:"capacity" validate:"min=4,max=1024"`
}

type BrowserConfig struct {
	Filter []string `yaml:"filter,omitempty" validate:"dive,required"`
}

type SerialConfig struct {
	Baud uint32 `yaml:"baud" validate:"oneof=300 1200 2400 4800 9600 19200"`
}

type MountConfig struct {
	Retries int           `yaml:"retries" validate:"min=1,max=50"`
	Backoff time.Duration `yaml:"backoff" validate:"gte=0,lte=10s"`
}

// BaudRates lists the line rates the device link can run at.
var BaudRates = []uint32{300, 1200, 2400, 4800, 9600, 19200}

func DefaultConfig() Config {
	return Config{
		Buttons: buttons.DefaultTiming(),
		Transfer: TransferConfig{
			CharDelay: transfer.DefaultCharDelay,
			LineDelay: transfer.DefaultLineDelay,
			ChunkSize: transfer.DefaultChunkSize,
		},
		Display: DisplayConfig{Scale: 1, Splash: true},
		Menu:    MenuConfig{Capacity: browser.DefaultCapacity},
		Serial:  SerialConfig{Baud: 9600},
		Mount:   MountConfig{Retries: 5, Backoff: 250 * time.Millisecond},
	}
}

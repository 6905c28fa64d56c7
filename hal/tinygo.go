//go:build tinygo && baremetal

package hal

import (
	"machine"

	"ttypanel/panel/volume"

	"tinygo.org/x/drivers/ssd1306"
)

// Board wiring.
const (
	displayAddress = 0x3C
	deviceBaud     = 9600
)

type tinyGoHAL struct {
	logger  Logger
	led     *pinLED
	buttons ButtonPins
	display *ssd1306.Device
	storage *volume.SDMounter
	up      Serial
	down    *machine.UART
}

// New returns the Pico front panel HAL.
//
// Buttons: GP12 menu, GP6 rewind, GP7 play, GP3 fast forward, GP2 record,
// all active low. SSD1306 128x64 on I2C0 (GP20 SDA, GP21 SCL). SD card on
// SPI1 (GP10 SCK, GP11 SDO, GP8 SDI, GP9 CS). Device on UART0 (GP0 TX,
// GP1 RX). Host link on USB CDC.
func New() HAL {
	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: deviceBaud,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	i2c := machine.I2C0
	_ = i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP20,
		SCL:       machine.GP21,
	})
	display := ssd1306.NewI2C(i2c)
	display.Configure(ssd1306.Config{
		Width:    128,
		Height:   64,
		Address:  displayAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})

	spi := machine.SPI1
	sd := volume.NewSDMounter(spi, volume.SDPins{
		SCK: machine.GP10,
		SDO: machine.GP11,
		SDI: machine.GP8,
		CS:  machine.GP9,
	})

	return &tinyGoHAL{
		logger: newLogger(),
		led:    &pinLED{pin: ledPin},
		buttons: ButtonPins{
			&boardPin{name: "MENU", pin: machine.GP12},
			&boardPin{name: "REWIND", pin: machine.GP6},
			&boardPin{name: "PLAY", pin: machine.GP7},
			&boardPin{name: "FF", pin: machine.GP3},
			&boardPin{name: "RECORD", pin: machine.GP2},
		},
		display: display,
		storage: sd,
		up:      machine.Serial,
		down:    uart,
	}
}

func (h *tinyGoHAL) Logger() Logger          { return h.logger }
func (h *tinyGoHAL) LED() LED                { return h.led }
func (h *tinyGoHAL) Buttons() ButtonPins     { return h.buttons }
func (h *tinyGoHAL) Display() Display        { return h.display }
func (h *tinyGoHAL) Storage() volume.Mounter { return h.storage }
func (h *tinyGoHAL) HostLink() Serial        { return h.up }
func (h *tinyGoHAL) DeviceLink() Serial      { return h.down }

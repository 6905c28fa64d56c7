//go:build tinygo && baremetal

package volume

import (
	"machine"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// SDPins is the SPI wiring of the card socket.
type SDPins struct {
	SCK, SDO, SDI, CS machine.Pin
}

// SDMounter mounts a FAT volume from an SD card on an SPI bus.
type SDMounter struct {
	bus  *machine.SPI
	pins SDPins
	sd   sdcard.Device
}

func NewSDMounter(bus *machine.SPI, pins SDPins) *SDMounter {
	return &SDMounter{bus: bus, pins: pins}
}

func (m *SDMounter) Mount() (Volume, error) {
	m.sd = sdcard.New(m.bus, m.pins.SCK, m.pins.SDO, m.pins.SDI, m.pins.CS)
	if err := m.sd.Configure(); err != nil {
		return nil, &Error{Op: "mount", Path: "/", Code: CodeNotReady, Err: err}
	}
	fat := fatfs.New(&m.sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		return nil, fatError("mount", "/", err)
	}
	return NewFAT(fat), nil
}

// Reset deselects the card and reconfigures the bus at the init clock.
func (m *SDMounter) Reset() {
	m.pins.CS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	m.pins.CS.High()
	_ = m.bus.Configure(machine.SPIConfig{
		SCK:       m.pins.SCK,
		SDO:       m.pins.SDO,
		SDI:       m.pins.SDI,
		Frequency: 400000,
	})
}

// internal/device/resync.go
package device

import (
	"fmt"
	"log"
)

// RegisterReader is the register access the identification needs.
// *spi.Transport implements it.
type RegisterReader interface {
	ReadInt(addr uint64, size int) (uint64, error)
}

// Device tracks which switch sits behind the bus.
// Family is only meaningful after a successful Resync.
type Device struct {
	regs   RegisterReader
	logger *log.Logger

	id     uint64
	family Family
	part   string
}

// New creates an unidentified Device. logger may be nil.
func New(regs RegisterReader, logger *log.Logger) *Device {
	return &Device{regs: regs, logger: logger}
}

// Resync reads the device ID and refreshes the family tag.
// A device that does not answer with a known SJA1105 ID fails.
func (d *Device) Resync() error {
	d.family = FamilyUnknown

	id, err := d.regs.ReadInt(RegDeviceID, 4)
	if err != nil {
		return fmt.Errorf("device: read device id: %w", err)
	}

	family := FamilyOf(id)
	if family == FamilyUnknown {
		return fmt.Errorf("%w 0x%08X", ErrUnknownDevice, id)
	}

	var partNo uint64
	if family == FamilyPQRS {
		prod, err := d.regs.ReadInt(RegProdID, 4)
		if err != nil {
			return fmt.Errorf("device: read part number: %w", err)
		}
		partNo = partNoFromProdID(prod)
	}

	d.id = id
	d.family = family
	d.part = PartName(id, partNo)

	if d.logger != nil {
		d.logger.Printf("detected %s (device id 0x%08X)", d.part, id)
	}
	return nil
}

// Family returns the tag established by the last Resync.
func (d *Device) Family() Family { return d.family }

// ID returns the device ID read by the last Resync.
func (d *Device) ID() uint64 { return d.id }

// Part returns the part name established by the last Resync.
func (d *Device) Part() string { return d.part }

// internal/dynconfig/mac_config.go
package dynconfig

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sja1105-tool/internal/device"
	"github.com/tamzrod/sja1105-tool/internal/spi"
	"github.com/tamzrod/sja1105-tool/internal/staging"
)

var (
	// ErrNotReadable is returned by Get on E/T parts.
	ErrNotReadable = errors.New("dynconfig: MAC reconfiguration table is not readable on this device")

	// ErrRejected reports a dynamic access the switch flagged with its errors bit.
	ErrRejected = errors.New("dynconfig: access rejected by device")

	// ErrBusy reports a read whose command was still pending when read back.
	ErrBusy = errors.New("dynconfig: access still pending")
)

// Bus is the register access dynconfig needs. *spi.Transport implements it.
type Bus interface {
	SendChunked(mode spi.AccessMode, base uint64, buf []byte) error
}

// FamilySource reports the identified device family. *device.Device implements it.
type FamilySource interface {
	Family() device.Family
}

// MACConfig reads and writes per-port MAC configuration through the
// reconfiguration interface of whichever family is attached.
type MACConfig struct {
	bus Bus
	dev FamilySource
}

func NewMACConfig(bus Bus, dev FamilySource) *MACConfig {
	return &MACConfig{bus: bus, dev: dev}
}

// Get reads the live MAC configuration entry of port (P/Q/R/S only).
func (m *MACConfig) Get(port int) (staging.MACConfigEntry, error) {
	if err := checkPort(port); err != nil {
		return staging.MACConfigEntry{}, err
	}

	switch f := m.dev.Family(); f {
	case device.FamilyPQRS:
		return m.getPQRS(port)
	case device.FamilyET:
		return staging.MACConfigEntry{}, ErrNotReadable
	default:
		return staging.MACConfigEntry{}, fmt.Errorf("dynconfig: device family %s", f)
	}
}

// Set commits entry as the MAC configuration of port.
func (m *MACConfig) Set(port int, entry staging.MACConfigEntry) error {
	if err := checkPort(port); err != nil {
		return err
	}

	switch f := m.dev.Family(); f {
	case device.FamilyPQRS:
		buf := make([]byte, sizeMACConfigPQRS)
		packMACEntryPQRS(buf[:sizeMACEntryPQRS], entry)
		packCmd(buf[sizeMACEntryPQRS:], cmd{valid: 1, rdwrset: 1, index: uint64(port)})

		if err := m.bus.SendChunked(spi.Write, addrMACConfigPQRS, buf); err != nil {
			return fmt.Errorf("dynconfig: write mac config port %d: %w", port, err)
		}
		return nil

	case device.FamilyET:
		buf := make([]byte, sizeMACConfigET)
		packMACConfigET(buf, uint64(port), entry)

		if err := m.bus.SendChunked(spi.Write, addrMACConfigET, buf); err != nil {
			return fmt.Errorf("dynconfig: write mac config port %d: %w", port, err)
		}
		return nil

	default:
		return fmt.Errorf("dynconfig: device family %s", f)
	}
}

func (m *MACConfig) getPQRS(port int) (staging.MACConfigEntry, error) {
	buf := make([]byte, sizeMACConfigPQRS)
	packCmd(buf[sizeMACEntryPQRS:], cmd{valid: 1, rdwrset: 0, index: uint64(port)})

	// The command goes out first; the switch then exposes the entry in the
	// same window.
	if err := m.bus.SendChunked(spi.Write, addrMACConfigPQRS, buf); err != nil {
		return staging.MACConfigEntry{}, fmt.Errorf("dynconfig: request mac config port %d: %w", port, err)
	}

	for i := range buf {
		buf[i] = 0
	}
	if err := m.bus.SendChunked(spi.Read, addrMACConfigPQRS, buf); err != nil {
		return staging.MACConfigEntry{}, fmt.Errorf("dynconfig: read mac config port %d: %w", port, err)
	}

	c := unpackCmd(buf[sizeMACEntryPQRS:])
	if c.errors != 0 {
		return staging.MACConfigEntry{}, fmt.Errorf("%w: mac config port %d", ErrRejected, port)
	}
	if c.valid != 0 {
		return staging.MACConfigEntry{}, fmt.Errorf("%w: mac config port %d", ErrBusy, port)
	}

	return unpackMACEntryPQRS(buf[:sizeMACEntryPQRS]), nil
}

func checkPort(port int) error {
	if port < 0 || port >= staging.NumPorts {
		return fmt.Errorf("%w: port %d out of range 0..%d", spi.ErrInvalidArgument, port, staging.NumPorts-1)
	}
	return nil
}

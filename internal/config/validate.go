// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// maxPayloadLimit mirrors the device's 64-word transaction limit.
const maxPayloadLimit = 256

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	if cfg.StagingArea == "" {
		return errors.New("config: staging_area is required")
	}

	d := cfg.Device

	// ------------------------------------------------------------
	// TRANSACTION GEOMETRY
	// ------------------------------------------------------------

	if d.MaxPayload < 0 || d.MaxPayload > maxPayloadLimit {
		return fmt.Errorf("config: device.max_payload %d out of range 0..%d", d.MaxPayload, maxPayloadLimit)
	}
	if d.MaxPayload%4 != 0 {
		return fmt.Errorf("config: device.max_payload %d is not a multiple of 4", d.MaxPayload)
	}

	// ------------------------------------------------------------
	// TRANSPORT SELECTION
	// ------------------------------------------------------------

	switch d.Transport {
	case TransportSPIDev:
		if d.SPIDev.Path == "" {
			return errors.New("config: device.spidev.path is required")
		}
		if d.SPIDev.Mode > 3 {
			return fmt.Errorf("config: device.spidev.mode %d out of range 0..3", d.SPIDev.Mode)
		}
		if d.SPIDev.BitsPerWord != 0 && d.SPIDev.BitsPerWord != 8 {
			return fmt.Errorf("config: device.spidev.bits_per_word %d unsupported (want 8)", d.SPIDev.BitsPerWord)
		}

	case TransportSerial:
		if d.Serial.Address == "" {
			return errors.New("config: device.serial.address is required")
		}
		if d.Serial.BaudRate < 0 {
			return fmt.Errorf("config: device.serial.baud_rate %d must be >= 0", d.Serial.BaudRate)
		}
		if d.Serial.TimeoutMs < 0 {
			return fmt.Errorf("config: device.serial.timeout_ms %d must be >= 0", d.Serial.TimeoutMs)
		}

	case TransportModbus:
		if d.Modbus.Endpoint == "" {
			return errors.New("config: device.modbus.endpoint is required")
		}
		if d.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("config: device.modbus.timeout_ms %d must be >= 0", d.Modbus.TimeoutMs)
		}

	case "":
		return errors.New("config: device.transport is required")

	default:
		return fmt.Errorf(
			"config: unknown device.transport %q (want %s, %s or %s)",
			d.Transport,
			TransportSPIDev,
			TransportSerial,
			TransportModbus,
		)
	}

	return nil
}

// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultSPIDevSpeedHz = 1000000
	DefaultBaudRate      = 115200
	DefaultTimeoutMs     = 1000
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device

	// 0 means "whatever the device allows"; the transport builder may clamp
	// further for bridges with smaller frames.
	if d.MaxPayload == 0 {
		d.MaxPayload = maxPayloadLimit
	}

	switch d.Transport {
	case TransportSPIDev:
		if d.SPIDev.BitsPerWord == 0 {
			d.SPIDev.BitsPerWord = 8
		}
		if d.SPIDev.SpeedHz == 0 {
			d.SPIDev.SpeedHz = DefaultSPIDevSpeedHz
		}

	case TransportSerial:
		if d.Serial.BaudRate == 0 {
			d.Serial.BaudRate = DefaultBaudRate
		}
		if d.Serial.TimeoutMs == 0 {
			d.Serial.TimeoutMs = DefaultTimeoutMs
		}

	case TransportModbus:
		if d.Modbus.TimeoutMs == 0 {
			d.Modbus.TimeoutMs = DefaultTimeoutMs
		}
	}
}

// internal/config/config.go
package config

// DefaultPath is where the tool looks for its configuration.
const DefaultPath = "/etc/sja1105/sja1105.yaml"

type Config struct {
	Device      DeviceConfig `yaml:"device"`
	StagingArea string       `yaml:"staging_area"`
	Debug       bool         `yaml:"debug"`
}

// ---- DEVICE ----

// Transport names accepted in device.transport.
const (
	TransportSPIDev = "spidev"
	TransportSerial = "serial"
	TransportModbus = "modbus"
)

type DeviceConfig struct {
	Transport  string `yaml:"transport"`
	MaxPayload int    `yaml:"max_payload"` // bytes per transaction; 0 => device maximum

	SPIDev SPIDevConfig `yaml:"spidev"`
	Serial SerialConfig `yaml:"serial"`
	Modbus ModbusConfig `yaml:"modbus"`
}

// ---- TRANSPORTS ----

type SPIDevConfig struct {
	Path        string `yaml:"path"`
	Mode        uint8  `yaml:"mode"`
	BitsPerWord uint8  `yaml:"bits_per_word"`
	SpeedHz     uint32 `yaml:"speed_hz"`
}

type SerialConfig struct {
	Address   string `yaml:"address"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Register  uint16 `yaml:"register"` // first holding register of the frame window
	TimeoutMs int    `yaml:"timeout_ms"`
}

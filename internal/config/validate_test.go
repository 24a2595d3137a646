// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a minimal valid config quickly
func spidevConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Transport: TransportSPIDev,
			SPIDev: SPIDevConfig{
				Path: "/dev/spidev0.1",
				Mode: 1,
			},
		},
		StagingArea: "/lib/firmware/sja1105.yaml",
	}
}

// ---- tests ----

func TestValidate_MinimalSPIDev(t *testing.T) {
	if err := Validate(spidevConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing staging area", func(c *Config) { c.StagingArea = "" }},
		{"missing transport", func(c *Config) { c.Device.Transport = "" }},
		{"unknown transport", func(c *Config) { c.Device.Transport = "i2c" }},
		{"spidev without path", func(c *Config) { c.Device.SPIDev.Path = "" }},
		{"spidev mode out of range", func(c *Config) { c.Device.SPIDev.Mode = 4 }},
		{"spidev 16-bit words", func(c *Config) { c.Device.SPIDev.BitsPerWord = 16 }},
		{"payload not word aligned", func(c *Config) { c.Device.MaxPayload = 30 }},
		{"payload above device limit", func(c *Config) { c.Device.MaxPayload = 260 }},
		{"negative payload", func(c *Config) { c.Device.MaxPayload = -4 }},
		{"serial without address", func(c *Config) { c.Device.Transport = TransportSerial }},
		{"modbus without endpoint", func(c *Config) { c.Device.Transport = TransportModbus }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := spidevConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := spidevConfig()
	before := *cfg

	_ = Validate(cfg)

	if *cfg != before {
		t.Fatalf("Validate mutated config: %+v -> %+v", before, *cfg)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := spidevConfig()
	Normalize(cfg)

	if cfg.Device.MaxPayload != 256 {
		t.Fatalf("max_payload = %d, want 256", cfg.Device.MaxPayload)
	}
	if cfg.Device.SPIDev.BitsPerWord != 8 {
		t.Fatalf("bits_per_word = %d, want 8", cfg.Device.SPIDev.BitsPerWord)
	}
	if cfg.Device.SPIDev.SpeedHz != DefaultSPIDevSpeedHz {
		t.Fatalf("speed_hz = %d", cfg.Device.SPIDev.SpeedHz)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Device: DeviceConfig{
			Transport:  TransportSerial,
			MaxPayload: 64,
			Serial:     SerialConfig{Address: "/dev/ttyACM0", BaudRate: 921600, TimeoutMs: 50},
		},
		StagingArea: "x.yaml",
	}
	Normalize(cfg)

	if cfg.Device.MaxPayload != 64 || cfg.Device.Serial.BaudRate != 921600 || cfg.Device.Serial.TimeoutMs != 50 {
		t.Fatalf("explicit values overwritten: %+v", cfg.Device)
	}
}

func TestLoad_YAML(t *testing.T) {
	doc := `
device:
  transport: modbus
  max_payload: 128
  modbus:
    endpoint: 10.0.0.5:502
    unit_id: 7
    register: 100
staging_area: /tmp/staging.yaml
debug: true
`
	path := filepath.Join(t.TempDir(), "sja1105.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}

	m := cfg.Device.Modbus
	if m.Endpoint != "10.0.0.5:502" || m.UnitID != 7 || m.Register != 100 {
		t.Fatalf("modbus section mismatch: %+v", m)
	}
	if cfg.Device.MaxPayload != 128 || !cfg.Debug {
		t.Fatalf("top-level mismatch: %+v", cfg)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("device:\n  transprt: spidev\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

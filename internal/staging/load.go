// internal/staging/load.go
package staging

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a staging area from its YAML file and validates it.
func Load(path string) (*Area, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("staging: %w", err)
	}

	var a Area
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("staging: decode %s: %w", path, err)
	}

	if err := Validate(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Save writes a staging area as YAML.
func Save(path string, a *Area) error {
	raw, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("staging: encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("staging: %w", err)
	}
	return nil
}

// FileLoader loads the staging area from a fixed path on every call.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load() (*Area, error) {
	return Load(l.Path)
}

// Validate checks field ranges that the device tables cannot represent.
// It MUST NOT mutate the area.
func Validate(a *Area) error {
	for port, e := range a.StaticConfig.MACConfig {
		if e.Speed > Speed10 {
			return fmt.Errorf("staging: mac_configuration_table[%d]: speed %d out of range 0..3", port, e.Speed)
		}
		if e.VLANID > 4095 {
			return fmt.Errorf("staging: mac_configuration_table[%d]: vlanid %d out of range", port, e.VLANID)
		}
		if e.VLANPrio > 7 {
			return fmt.Errorf("staging: mac_configuration_table[%d]: vlanprio %d out of range", port, e.VLANPrio)
		}
	}

	x := a.StaticConfig.XMIIParams
	for port := 0; port < NumPorts; port++ {
		if x.XMIIMode[port] > XMIIModeRGMII {
			return fmt.Errorf("staging: xmii_mode_parameters_table: port %d mode %d out of range 0..2", port, x.XMIIMode[port])
		}
		if x.PHYMAC[port] > RolePHY {
			return fmt.Errorf("staging: xmii_mode_parameters_table: port %d phy_mac %d out of range 0..1", port, x.PHYMAC[port])
		}
	}
	return nil
}

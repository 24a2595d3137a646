// internal/staging/staging.go
package staging

// NumPorts is the number of switch ports.
const NumPorts = 5

// NumPriorities is the number of egress queues per port.
const NumPriorities = 8

// ---- MAC CONFIGURATION ----

// Speed values of the MAC configuration table. The encoding is inverted
// relative to magnitude.
const (
	SpeedUnset = 0 // not fixed; left to dynamic reconfiguration
	Speed1000  = 1
	Speed100   = 2
	Speed10    = 3
)

// SpeedMbps converts a table speed to Mbps; 0 for SpeedUnset or unknown values.
func SpeedMbps(speed uint64) int {
	switch speed {
	case Speed1000:
		return 1000
	case Speed100:
		return 100
	case Speed10:
		return 10
	default:
		return 0
	}
}

// MACConfigEntry is one row of the MAC configuration table (one per port).
type MACConfigEntry struct {
	Top     [NumPriorities]uint64 `yaml:"top"`
	Base    [NumPriorities]uint64 `yaml:"base"`
	Enabled [NumPriorities]uint64 `yaml:"enabled"`

	IFG        uint64 `yaml:"ifg"`
	Speed      uint64 `yaml:"speed"`
	TPDelIn    uint64 `yaml:"tp_delin"`
	TPDelOut   uint64 `yaml:"tp_delout"`
	MaxAge     uint64 `yaml:"maxage"`
	VLANPrio   uint64 `yaml:"vlanprio"`
	VLANID     uint64 `yaml:"vlanid"`
	IngMirr    uint64 `yaml:"ing_mirr"`
	EgrMirr    uint64 `yaml:"egr_mirr"`
	DrpNonA664 uint64 `yaml:"drpnona664"`
	DrpDTag    uint64 `yaml:"drpdtag"`
	DrpUntag   uint64 `yaml:"drpuntag"`
	Retag      uint64 `yaml:"retag"`
	DynLearn   uint64 `yaml:"dyn_learn"`
	Egress     uint64 `yaml:"egress"`
	Ingress    uint64 `yaml:"ingress"`
}

// ---- xMII MODE PARAMETERS ----

// XMIIMode is the electrical interface of a port.
type XMIIMode uint64

const (
	XMIIModeMII   XMIIMode = 0
	XMIIModeRMII  XMIIMode = 1
	XMIIModeRGMII XMIIMode = 2
)

func (m XMIIMode) String() string {
	switch m {
	case XMIIModeMII:
		return "MII"
	case XMIIModeRMII:
		return "RMII"
	case XMIIModeRGMII:
		return "RGMII"
	default:
		return "invalid"
	}
}

// Role of the switch port on the xMII link.
const (
	RoleMAC = 0
	RolePHY = 1
)

// XMIIParams is the single entry of the xMII mode parameters table.
type XMIIParams struct {
	PHYMAC   [NumPorts]uint64   `yaml:"phy_mac"`
	XMIIMode [NumPorts]XMIIMode `yaml:"xmii_mode"`
}

// ---- STAGING AREA ----

// StaticConfig is the part of the static configuration the tool consumes.
type StaticConfig struct {
	MACConfig  [NumPorts]MACConfigEntry `yaml:"mac_configuration_table"`
	XMIIParams XMIIParams               `yaml:"xmii_mode_parameters_table"`
}

// Area is the cached, in-memory copy of the device's static configuration.
type Area struct {
	StaticConfig StaticConfig `yaml:"static_config"`
}

// internal/device/device.go
package device

import (
	"errors"
	"fmt"
)

// ---- REGISTERS ----

const (
	// RegDeviceID holds the 32-bit device identifier.
	RegDeviceID = 0x0

	// RegProdID holds the part number in bits 19..4 (P/Q/R/S only).
	RegProdID = 0x100BC3
)

// ---- DEVICE IDS ----

const (
	IDSJA1105E  = 0x9C00000C
	IDSJA1105T  = 0x9E00030E
	IDSJA1105PR = 0xAF00030E
	IDSJA1105QS = 0xAE00030E
)

// ---- PART NUMBERS ----

const (
	PartNoP = 0x9A84
	PartNoQ = 0x9A85
	PartNoR = 0x9A86
	PartNoS = 0x9A87
)

// Family tells which reconfiguration features a switch has.
type Family uint8

const (
	FamilyUnknown Family = iota

	// FamilyET (SJA1105E/T): MAC reconfiguration tables are write-only.
	FamilyET

	// FamilyPQRS (SJA1105P/Q/R/S): MAC reconfiguration tables can be read back.
	FamilyPQRS
)

func (f Family) String() string {
	switch f {
	case FamilyET:
		return "E/T"
	case FamilyPQRS:
		return "P/Q/R/S"
	default:
		return "unknown"
	}
}

// ErrUnknownDevice reports a device ID that is not an SJA1105.
var ErrUnknownDevice = errors.New("device: unknown device id")

// FamilyOf maps a device ID register value to its family.
func FamilyOf(id uint64) Family {
	switch id {
	case IDSJA1105E, IDSJA1105T:
		return FamilyET
	case IDSJA1105PR, IDSJA1105QS:
		return FamilyPQRS
	default:
		return FamilyUnknown
	}
}

// PartName names a switch from its device ID and (P/Q/R/S only) part number.
func PartName(id, partNo uint64) string {
	switch id {
	case IDSJA1105E:
		return "SJA1105E"
	case IDSJA1105T:
		return "SJA1105T"
	}
	switch partNo {
	case PartNoP:
		return "SJA1105P"
	case PartNoQ:
		return "SJA1105Q"
	case PartNoR:
		return "SJA1105R"
	case PartNoS:
		return "SJA1105S"
	}
	return fmt.Sprintf("unknown (id=0x%08X part=0x%04X)", id, partNo)
}

// partNoFromProdID extracts the part number field of the prod_id register.
func partNoFromProdID(v uint64) uint64 {
	return (v >> 4) & 0xFFFF
}

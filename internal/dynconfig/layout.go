// internal/dynconfig/layout.go
package dynconfig

import (
	"github.com/tamzrod/sja1105-tool/internal/packing"
	"github.com/tamzrod/sja1105-tool/internal/staging"
)

// Register map and buffer geometry of the MAC configuration reconfiguration
// interfaces. These values are device-defined and MUST NOT be configurable.

// ---- E/T ----

// addrMACConfigET is the MAC reconfiguration register pair (write-only).
const addrMACConfigET = 0x36

// sizeMACConfigET covers both reconfiguration registers.
const sizeMACConfigET = 8

// ---- P/Q/R/S ----

// addrMACConfigPQRS is the dynamic MAC configuration access window.
const addrMACConfigPQRS = 0x4B

// sizeMACEntryPQRS is one MAC configuration entry in static-table layout.
const sizeMACEntryPQRS = 32

// sizeMACCmd is the command word following the entry.
const sizeMACCmd = 4

const sizeMACConfigPQRS = sizeMACEntryPQRS + sizeMACCmd

// cmd is the control word of a dynamic access.
type cmd struct {
	valid   uint64 // set by software, cleared by hardware when done
	errors  uint64 // set by hardware on rejected access
	rdwrset uint64 // 1 = write, 0 = read
	index   uint64 // port
}

// ---- E/T packing ----

// packMACConfigET fills the 8-byte reconfiguration buffer.
// Fields the E/T reconfiguration registers cannot change
// (top, base, enabled, ifg, maxage, drpnona664) are not sent.
func packMACConfigET(buf []byte, port uint64, e staging.MACConfigEntry) {
	packing.Pack(buf, 1, 63, 63) // valid
	packing.Pack(buf, e.Speed, 62, 61)
	packing.Pack(buf, port, 58, 56)
	packing.Pack(buf, e.DrpDTag, 55, 55)
	packing.Pack(buf, e.DrpUntag, 54, 54)
	packing.Pack(buf, e.Retag, 53, 53)
	packing.Pack(buf, e.DynLearn, 52, 52)
	packing.Pack(buf, e.Egress, 51, 51)
	packing.Pack(buf, e.Ingress, 50, 50)
	packing.Pack(buf, e.IngMirr, 49, 49)
	packing.Pack(buf, e.EgrMirr, 48, 48)
	packing.Pack(buf, e.VLANPrio, 46, 44)
	packing.Pack(buf, e.VLANID, 43, 32)
	packing.Pack(buf, e.TPDelIn, 31, 16)
	packing.Pack(buf, e.TPDelOut, 15, 0)
}

// ---- P/Q/R/S packing ----

func packMACEntryPQRS(buf []byte, e staging.MACConfigEntry) {
	for i, off := 0, 104; i < staging.NumPriorities; i, off = i+1, off+19 {
		packing.Pack(buf, e.Enabled[i], off, off)
		packing.Pack(buf, e.Base[i], off+9, off+1)
		packing.Pack(buf, e.Top[i], off+18, off+10)
	}
	packing.Pack(buf, e.IFG, 103, 99)
	packing.Pack(buf, e.Speed, 98, 97)
	packing.Pack(buf, e.TPDelIn, 96, 81)
	packing.Pack(buf, e.TPDelOut, 80, 65)
	packing.Pack(buf, e.MaxAge, 64, 57)
	packing.Pack(buf, e.VLANPrio, 56, 54)
	packing.Pack(buf, e.VLANID, 53, 42)
	packing.Pack(buf, e.IngMirr, 41, 41)
	packing.Pack(buf, e.EgrMirr, 40, 40)
	packing.Pack(buf, e.DrpNonA664, 39, 39)
	packing.Pack(buf, e.DrpDTag, 38, 38)
	packing.Pack(buf, e.DrpUntag, 35, 35)
	packing.Pack(buf, e.Retag, 34, 34)
	packing.Pack(buf, e.DynLearn, 33, 33)
	packing.Pack(buf, e.Egress, 32, 32)
	packing.Pack(buf, e.Ingress, 31, 31)
}

func unpackMACEntryPQRS(buf []byte) staging.MACConfigEntry {
	var e staging.MACConfigEntry
	for i, off := 0, 104; i < staging.NumPriorities; i, off = i+1, off+19 {
		e.Enabled[i] = packing.Unpack(buf, off, off)
		e.Base[i] = packing.Unpack(buf, off+9, off+1)
		e.Top[i] = packing.Unpack(buf, off+18, off+10)
	}
	e.IFG = packing.Unpack(buf, 103, 99)
	e.Speed = packing.Unpack(buf, 98, 97)
	e.TPDelIn = packing.Unpack(buf, 96, 81)
	e.TPDelOut = packing.Unpack(buf, 80, 65)
	e.MaxAge = packing.Unpack(buf, 64, 57)
	e.VLANPrio = packing.Unpack(buf, 56, 54)
	e.VLANID = packing.Unpack(buf, 53, 42)
	e.IngMirr = packing.Unpack(buf, 41, 41)
	e.EgrMirr = packing.Unpack(buf, 40, 40)
	e.DrpNonA664 = packing.Unpack(buf, 39, 39)
	e.DrpDTag = packing.Unpack(buf, 38, 38)
	e.DrpUntag = packing.Unpack(buf, 35, 35)
	e.Retag = packing.Unpack(buf, 34, 34)
	e.DynLearn = packing.Unpack(buf, 33, 33)
	e.Egress = packing.Unpack(buf, 32, 32)
	e.Ingress = packing.Unpack(buf, 31, 31)
	return e
}

func packCmd(buf []byte, c cmd) {
	packing.Pack(buf, c.valid, 31, 31)
	packing.Pack(buf, c.errors, 30, 30)
	packing.Pack(buf, c.rdwrset, 29, 29)
	packing.Pack(buf, c.index, 2, 0)
}

func unpackCmd(buf []byte) cmd {
	return cmd{
		valid:   packing.Unpack(buf, 31, 31),
		errors:  packing.Unpack(buf, 30, 30),
		rdwrset: packing.Unpack(buf, 29, 29),
		index:   packing.Unpack(buf, 2, 0),
	}
}

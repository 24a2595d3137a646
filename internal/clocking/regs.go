// internal/clocking/regs.go
package clocking

import (
	"github.com/tamzrod/sja1105-tool/internal/device"
	"github.com/tamzrod/sja1105-tool/internal/packing"
)

// Clock Generation Unit register maps, one entry per port.
// These values are device-defined and MUST NOT be configurable.

// regMap locates the CGU and pad registers of one device family.
type regMap struct {
	pll1        uint64
	idiv        [5]uint64
	miiTxClk    [5]uint64
	miiRxClk    [5]uint64
	rmiiRefClk  [5]uint64
	rgmiiTxClk  [5]uint64
	miiExtTxClk [5]uint64
	miiExtRxClk [5]uint64
	padMIITx    [5]uint64
}

// ---- E/T ----

var regsET = regMap{
	pll1:        0x10000A,
	idiv:        [5]uint64{0x10000B, 0x10000C, 0x10000D, 0x10000E, 0x10000F},
	miiTxClk:    [5]uint64{0x100013, 0x10001A, 0x100021, 0x100028, 0x10002F},
	miiRxClk:    [5]uint64{0x100014, 0x10001B, 0x100022, 0x100029, 0x100030},
	rmiiRefClk:  [5]uint64{0x100015, 0x10001C, 0x100023, 0x10002A, 0x100031},
	rgmiiTxClk:  [5]uint64{0x100016, 0x10001D, 0x100024, 0x10002B, 0x100032},
	miiExtTxClk: [5]uint64{0x100018, 0x10001F, 0x100026, 0x10002D, 0x100034},
	miiExtRxClk: [5]uint64{0x100019, 0x100020, 0x100027, 0x10002E, 0x100035},
	padMIITx:    [5]uint64{0x100800, 0x100802, 0x100804, 0x100806, 0x100808},
}

// ---- P/Q/R/S ----

var regsPQRS = regMap{
	pll1:        0x10000A,
	idiv:        [5]uint64{0x10000B, 0x10000C, 0x10000D, 0x10000E, 0x10000F},
	miiTxClk:    [5]uint64{0x100013, 0x100019, 0x10001F, 0x100025, 0x10002B},
	miiRxClk:    [5]uint64{0x100014, 0x10001A, 0x100020, 0x100026, 0x10002C},
	rmiiRefClk:  [5]uint64{0x100015, 0x10001B, 0x100021, 0x100027, 0x10002D},
	rgmiiTxClk:  [5]uint64{0x100016, 0x10001C, 0x100022, 0x100028, 0x10002E},
	miiExtTxClk: [5]uint64{0x100017, 0x10001D, 0x100023, 0x100029, 0x10002F},
	miiExtRxClk: [5]uint64{0x100018, 0x10001E, 0x100024, 0x10002A, 0x100030},
	padMIITx:    [5]uint64{0x100800, 0x100802, 0x100804, 0x100806, 0x100808},
}

func regsFor(f device.Family) (*regMap, bool) {
	switch f {
	case device.FamilyET:
		return &regsET, true
	case device.FamilyPQRS:
		return &regsPQRS, true
	default:
		return nil, false
	}
}

// ---- clock sources ----

const (
	clkSrcMIITxClk0 = 0x00 // + 2*port
	clkSrcMIIRxClk0 = 0x01 // + 2*port
	clkSrcOsc25MHz  = 0x0A
	clkSrcPLL0      = 0x0B // 125 MHz
	clkSrcPLL1      = 0x0E // 50 MHz
	clkSrcIDIV0     = 0x11 // + port
)

func srcMIITx(port int) uint64 { return clkSrcMIITxClk0 + 2*uint64(port) }
func srcMIIRx(port int) uint64 { return clkSrcMIIRxClk0 + 2*uint64(port) }
func srcIDIV(port int) uint64  { return clkSrcIDIV0 + uint64(port) }

// ---- control words ----

// ctrl is the layout shared by the IDIV and the per-port clock muxes.
// idiv is only meaningful on IDIV registers.
type ctrl struct {
	clksrc    uint64
	autoblock uint64
	idiv      uint64 // divide factor minus one
	pd        uint64
}

func (c ctrl) word() uint64 {
	buf := make([]byte, 4)
	packing.Pack(buf, c.clksrc, 28, 24)
	packing.Pack(buf, c.autoblock, 11, 11)
	packing.Pack(buf, c.idiv, 5, 2)
	packing.Pack(buf, c.pd, 0, 0)
	return packing.Unpack(buf, 31, 0)
}

// pll is the PLL1 control word.
type pll struct {
	pllclksrc uint64
	msel      uint64
	autoblock uint64
	psel      uint64
	direct    uint64
	fbsel     uint64
	bypass    uint64
	pd        uint64
}

func (p pll) word() uint64 {
	buf := make([]byte, 4)
	packing.Pack(buf, p.pllclksrc, 28, 24)
	packing.Pack(buf, p.msel, 23, 16)
	packing.Pack(buf, p.autoblock, 11, 11)
	packing.Pack(buf, p.psel, 9, 8)
	packing.Pack(buf, p.direct, 7, 7)
	packing.Pack(buf, p.fbsel, 6, 6)
	packing.Pack(buf, p.bypass, 1, 1)
	packing.Pack(buf, p.pd, 0, 0)
	return packing.Unpack(buf, 31, 0)
}

// padTx is the TX pad configuration of an xMII port.
// os selects the output stage, ipud the input stage, ih the clock input hysteresis.
type padTx struct {
	d32os, d32ipud   uint64
	d10os, d10ipud   uint64
	ctrlos, ctrlipud uint64
	clkos, clkih     uint64
	clkipud          uint64
}

func (p padTx) word() uint64 {
	buf := make([]byte, 4)
	packing.Pack(buf, p.d32os, 28, 27)
	packing.Pack(buf, p.d32ipud, 25, 24)
	packing.Pack(buf, p.d10os, 20, 19)
	packing.Pack(buf, p.d10ipud, 17, 16)
	packing.Pack(buf, p.ctrlos, 12, 11)
	packing.Pack(buf, p.ctrlipud, 9, 8)
	packing.Pack(buf, p.clkos, 4, 3)
	packing.Pack(buf, p.clkih, 2, 2)
	packing.Pack(buf, p.clkipud, 1, 0)
	return packing.Unpack(buf, 31, 0)
}

// padTxRGMII drives all TX pads at high speed with plain inputs.
var padTxRGMII = padTx{
	d32os: 3, d32ipud: 2,
	d10os: 3, d10ipud: 2,
	ctrlos: 3, ctrlipud: 2,
	clkos: 3, clkih: 0, clkipud: 2,
}

// internal/clocking/cgu.go
package clocking

import (
	"fmt"
	"log"

	"github.com/tamzrod/sja1105-tool/internal/device"
	"github.com/tamzrod/sja1105-tool/internal/spi"
	"github.com/tamzrod/sja1105-tool/internal/staging"
)

// RegisterWriter is the register access the CGU needs.
// *spi.Transport implements it.
type RegisterWriter interface {
	WriteInt(addr uint64, v uint64, size int) error
}

// FamilySource reports the identified device family. *device.Device implements it.
type FamilySource interface {
	Family() device.Family
}

// CGU programs the Clock Generation Unit for one port at a time.
// The register map follows the family reported at each SetupPort.
type CGU struct {
	regs   RegisterWriter
	dev    FamilySource
	logger *log.Logger
}

// New creates a CGU. logger may be nil.
func New(regs RegisterWriter, dev FamilySource, logger *log.Logger) *CGU {
	return &CGU{regs: regs, dev: dev, logger: logger}
}

// SetupPort routes the clocks of port for its xMII mode, role and speed.
// MII and RGMII need a known speed; RMII runs from a fixed 50 MHz reference.
func (c *CGU) SetupPort(port int, x staging.XMIIParams, e staging.MACConfigEntry) error {
	if port < 0 || port >= staging.NumPorts {
		return fmt.Errorf("%w: port %d out of range 0..%d", spi.ErrInvalidArgument, port, staging.NumPorts-1)
	}

	m, ok := regsFor(c.dev.Family())
	if !ok {
		return fmt.Errorf("clocking: device family %s", c.dev.Family())
	}

	mode := x.XMIIMode[port]
	role := x.PHYMAC[port]
	mbps := staging.SpeedMbps(e.Speed)

	c.logf("clocking: port %d %s role=%d speed=%d", port, mode, role, mbps)

	switch mode {
	case staging.XMIIModeMII:
		if mbps != 100 && mbps != 10 {
			return fmt.Errorf("%w: MII port %d needs speed 10 or 100 (got %d)", spi.ErrInvalidArgument, port, mbps)
		}
		return c.setupMII(m, port, role, mbps)

	case staging.XMIIModeRMII:
		return c.setupRMII(m, port, role)

	case staging.XMIIModeRGMII:
		if mbps == 0 {
			return fmt.Errorf("%w: RGMII port %d needs a known speed", spi.ErrInvalidArgument, port)
		}
		return c.setupRGMII(m, port, mbps)

	default:
		return fmt.Errorf("%w: port %d xmii mode %d", spi.ErrInvalidArgument, port, mode)
	}
}

// ---- MII ----

func (c *CGU) setupMII(m *regMap, port int, role uint64, mbps int) error {
	if err := c.idiv(m, port, true, divider(mbps)); err != nil {
		return err
	}

	tx := srcMIITx(port)
	if role == staging.RolePHY {
		tx = srcIDIV(port)
	}
	if err := c.mux(m.miiTxClk[port], tx, "mii_tx_clk"); err != nil {
		return err
	}
	if err := c.mux(m.miiRxClk[port], srcMIIRx(port), "mii_rx_clk"); err != nil {
		return err
	}

	if role != staging.RolePHY {
		return nil
	}
	// PHY role drives both external clocks.
	if err := c.mux(m.miiExtTxClk[port], srcIDIV(port), "mii_ext_tx_clk"); err != nil {
		return err
	}
	return c.mux(m.miiExtRxClk[port], srcIDIV(port), "mii_ext_rx_clk")
}

// ---- RMII ----

func (c *CGU) setupRMII(m *regMap, port int, role uint64) error {
	if err := c.idiv(m, port, false, 1); err != nil {
		return err
	}
	if err := c.mux(m.rmiiRefClk[port], srcMIITx(port), "rmii_ref_clk"); err != nil {
		return err
	}

	if role != staging.RoleMAC {
		return nil
	}
	// As MAC the switch sources the 50 MHz reference itself.
	if err := c.pll1(m); err != nil {
		return err
	}
	return c.mux(m.miiExtTxClk[port], clkSrcPLL1, "mii_ext_tx_clk")
}

// ---- RGMII ----

func (c *CGU) setupRGMII(m *regMap, port int, mbps int) error {
	gigabit := mbps == 1000

	if err := c.idiv(m, port, !gigabit, divider(mbps)); err != nil {
		return err
	}

	src := srcIDIV(port)
	if gigabit {
		src = clkSrcPLL0
	}
	if err := c.mux(m.rgmiiTxClk[port], src, "rgmii_tx_clk"); err != nil {
		return err
	}

	if err := c.regs.WriteInt(m.padMIITx[port], padTxRGMII.word(), 4); err != nil {
		return fmt.Errorf("clocking: write pad_mii_tx port %d: %w", port, err)
	}
	return nil
}

// ---- register writes ----

func (c *CGU) idiv(m *regMap, port int, enabled bool, factor uint64) error {
	w := ctrl{
		clksrc:    clkSrcOsc25MHz,
		autoblock: 1,
		idiv:      factor - 1,
	}
	if !enabled {
		w.pd = 1
	}
	if err := c.regs.WriteInt(m.idiv[port], w.word(), 4); err != nil {
		return fmt.Errorf("clocking: write idiv port %d: %w", port, err)
	}
	return nil
}

func (c *CGU) mux(addr, src uint64, name string) error {
	w := ctrl{clksrc: src, autoblock: 1}
	if err := c.regs.WriteInt(addr, w.word(), 4); err != nil {
		return fmt.Errorf("clocking: write %s: %w", name, err)
	}
	return nil
}

// pll1 sets PLL1 to 50 MHz from the 25 MHz oscillator, powering it up last.
func (c *CGU) pll1(m *regMap) error {
	p := pll{
		pllclksrc: clkSrcOsc25MHz,
		msel:      1,
		autoblock: 1,
		psel:      1,
		fbsel:     1,
		pd:        1,
	}
	if err := c.regs.WriteInt(m.pll1, p.word(), 4); err != nil {
		return fmt.Errorf("clocking: write pll1: %w", err)
	}
	p.pd = 0
	if err := c.regs.WriteInt(m.pll1, p.word(), 4); err != nil {
		return fmt.Errorf("clocking: enable pll1: %w", err)
	}
	return nil
}

func (c *CGU) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// divider returns the IDIV factor producing the MII clock for mbps
// from the 25 MHz oscillator.
func divider(mbps int) uint64 {
	if mbps == 10 {
		return 10
	}
	return 1
}

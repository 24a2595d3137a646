// cmd/sja1105-tool/reg.go
package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/tamzrod/sja1105-tool/internal/packing"
	"github.com/tamzrod/sja1105-tool/internal/spi"
)

// regBus is the register access the reg command needs.
type regBus interface {
	SendChunked(mode spi.AccessMode, base uint64, buf []byte) error
	WriteInt(addr uint64, v uint64, size int) error
}

// regCmd is a parsed "reg" command line.
type regCmd struct {
	addr  uint64
	size  int // bytes per register, 4 or 8
	count int // registers to read
	write bool
	value uint64
}

// parseReg checks a "reg" command line without touching the bus.
func parseReg(args []string, stderr io.Writer) (regCmd, error) {
	fs := flag.NewFlagSet("reg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	size := fs.Int("size", 4, "register size in bytes (4 or 8)")
	count := fs.Int("count", 1, "number of registers to read")

	if err := fs.Parse(args); err != nil {
		return regCmd{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	c := regCmd{size: *size, count: *count}

	if c.size != 4 && c.size != 8 {
		return regCmd{}, fmt.Errorf("%w: -size %d (want 4 or 8)", errUsage, c.size)
	}
	// The whole read must fit the 21-bit word address space.
	if c.count < 1 || uint64(c.count) > (spi.MaxAddress+1)/uint64(c.size/4) {
		return regCmd{}, fmt.Errorf("%w: -count %d", errUsage, c.count)
	}

	pos := fs.Args()
	if len(pos) < 1 || len(pos) > 2 {
		return regCmd{}, fmt.Errorf("%w: reg takes <addr> [<value>]", errUsage)
	}

	addr, err := strconv.ParseUint(pos[0], 0, 64)
	if err != nil {
		return regCmd{}, fmt.Errorf("%w: address %q", errUsage, pos[0])
	}
	c.addr = addr

	if len(pos) == 2 {
		v, err := strconv.ParseUint(pos[1], 0, 8*c.size)
		if err != nil {
			return regCmd{}, fmt.Errorf("%w: value %q", errUsage, pos[1])
		}
		c.write, c.value = true, v
	}
	return c, nil
}

// runReg reads c.count registers starting at c.addr, or writes c.value.
func runReg(bus regBus, c regCmd, stdout io.Writer) error {
	if c.write {
		return bus.WriteInt(c.addr, c.value, c.size)
	}

	buf := make([]byte, c.count*c.size)
	if err := bus.SendChunked(spi.Read, c.addr, buf); err != nil {
		return err
	}

	// Word addresses advance by the register width in words.
	step := uint64(c.size / 4)
	for i := 0; i < c.count; i++ {
		v := packing.Unpack(buf[i*c.size:(i+1)*c.size], 8*c.size-1, 0)
		fmt.Fprintf(stdout, "0x%06x: 0x%0*x\n", c.addr+uint64(i)*step, 2*c.size, v)
	}
	return nil
}

// internal/spi/scalar.go
package spi

import (
	"fmt"

	"github.com/tamzrod/sja1105-tool/internal/packing"
)

// SendInt moves one unsigned value of size bytes to or from word address addr.
//
// Write: *value is packed into bits [8*size-1:0] and sent.
// Read: the response is unpacked into *value.
// The bus moves whole words, so size must be 4 or 8.
func (t *Transport) SendInt(mode AccessMode, addr uint64, value *uint64, size int) error {
	if !mode.valid() {
		return fmt.Errorf("%w: access mode %d is neither read nor write", ErrInvalidArgument, uint8(mode))
	}
	if size != 4 && size != 8 {
		return fmt.Errorf("%w: register size %d (want 4 or 8)", ErrInvalidArgument, size)
	}
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrInvalidArgument)
	}

	buf := make([]byte, size)
	if mode == Write {
		packing.Pack(buf, *value, 8*size-1, 0)
	}

	if err := t.SendPacked(mode, addr, buf); err != nil {
		return err
	}

	if mode == Read {
		*value = packing.Unpack(buf, 8*size-1, 0)
	}
	return nil
}

// ReadInt reads a size-byte register at addr.
func (t *Transport) ReadInt(addr uint64, size int) (uint64, error) {
	var v uint64
	err := t.SendInt(Read, addr, &v, size)
	return v, err
}

// WriteInt writes v as a size-byte register at addr.
func (t *Transport) WriteInt(addr uint64, v uint64, size int) error {
	return t.SendInt(Write, addr, &v, size)
}

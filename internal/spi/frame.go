// internal/spi/frame.go
package spi

import (
	"fmt"

	"github.com/tamzrod/sja1105-tool/internal/packing"
)

// ---- WIRE GEOMETRY ----

// HeaderSize is the fixed size of the request header preceding every payload.
const HeaderSize = 4

// MaxPayloadSize is the largest payload one transaction may carry (64 words).
const MaxPayloadSize = 64 * 4

// MaxTransactionSize bounds the buffers handed to the exchanger.
const MaxTransactionSize = HeaderSize + MaxPayloadSize

// MaxAddress is the highest word address the 21-bit field can express.
const MaxAddress = 1<<21 - 1

// ---- ACCESS MODE ----

// AccessMode is the direction bit of the request header.
type AccessMode uint8

const (
	Read  AccessMode = 0
	Write AccessMode = 1
)

func (m AccessMode) valid() bool {
	return m == Read || m == Write
}

func (m AccessMode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("AccessMode(%d)", uint8(m))
	}
}

// ---- HEADER ----

// Header is the decoded form of the 4-byte request header.
//
// Layout (MSB-first over bytes 0..3):
//
//	31     access      1 = write, 0 = read
//	30..25 read_count  words to read, 0 for writes
//	24..4  address     word address
//	3..0   reserved    zero
type Header struct {
	Access    AccessMode
	ReadCount uint64
	Address   uint64
}

// EncodeHeader zero-fills buf[:HeaderSize] and packs h into it.
// No range checks: fields wider than their slot are truncated.
func EncodeHeader(buf []byte, h Header) {
	b := buf[:HeaderSize]
	for i := range b {
		b[i] = 0
	}
	packing.Pack(b, uint64(h.Access), 31, 31)
	packing.Pack(b, h.ReadCount, 30, 25)
	packing.Pack(b, h.Address, 24, 4)
}

// DecodeHeader unpacks a header from buf[:HeaderSize].
func DecodeHeader(buf []byte) Header {
	b := buf[:HeaderSize]

	var h Header
	h.Access = AccessMode(packing.Unpack(b, 31, 31))
	h.ReadCount = packing.Unpack(b, 30, 25)
	h.Address = packing.Unpack(b, 24, 4)
	return h
}

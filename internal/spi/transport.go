// internal/spi/transport.go
package spi

import (
	"fmt"
	"log"
)

// Exchanger performs one full-duplex bus transaction.
// tx and rx always have the same length, at most HeaderSize + the transport's
// max payload. Implementations own bus locking if they are shared.
type Exchanger interface {
	Exchange(tx, rx []byte) error
}

// Transport turns logical reads and writes into bounded bus transactions.
// It is synchronous and holds no state between calls.
// No retries, no serialization of concurrent callers.
type Transport struct {
	ex         Exchanger
	maxPayload int
	logger     *log.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithMaxPayload lowers the per-transaction payload limit, for exchangers
// whose own frames are smaller than the device's.
// Values that are not a positive multiple of 4 up to MaxPayloadSize are ignored.
func WithMaxPayload(n int) Option {
	return func(t *Transport) {
		if n > 0 && n%4 == 0 && n <= MaxPayloadSize {
			t.maxPayload = n
		}
	}
}

// WithLogger enables one trace line per bus transaction.
func WithLogger(l *log.Logger) Option {
	return func(t *Transport) {
		t.logger = l
	}
}

// New creates a Transport over ex.
func New(ex Exchanger, opts ...Option) *Transport {
	if ex == nil {
		panic("spi: exchanger cannot be nil")
	}

	t := &Transport{
		ex:         ex,
		maxPayload: MaxPayloadSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MaxPayload returns the per-transaction payload limit in bytes.
func (t *Transport) MaxPayload() int { return t.maxPayload }

// MaxTransaction returns the largest buffer handed to the exchanger.
func (t *Transport) MaxTransaction() int { return HeaderSize + t.maxPayload }

// SendPacked performs exactly one transaction at word address addr.
//
// Write: buf is sent as payload. Read: buf is filled from the response.
// len(buf) must be a non-zero multiple of 4 no larger than MaxPayload();
// larger buffers go through SendChunked.
func (t *Transport) SendPacked(mode AccessMode, addr uint64, buf []byte) error {
	if !mode.valid() {
		return fmt.Errorf("%w: access mode %d is neither read nor write", ErrInvalidArgument, uint8(mode))
	}
	size := len(buf)
	if size == 0 || size%4 != 0 {
		return fmt.Errorf("%w: payload of %d bytes is not a whole number of words", ErrInvalidArgument, size)
	}
	if size+HeaderSize > t.MaxTransaction() {
		return fmt.Errorf("%w: is=%d, max=%d", ErrMessageTooLong, size+HeaderSize, t.MaxTransaction())
	}
	if addr > MaxAddress || uint64(size/4)-1 > MaxAddress-addr {
		return fmt.Errorf("%w: address 0x%06x+%d words exceeds 21 bits", ErrInvalidArgument, addr, size/4)
	}

	h := Header{Access: mode, Address: addr}
	if mode == Read {
		h.ReadCount = uint64(size / 4)
	}

	msgLen := HeaderSize + size
	tx := make([]byte, msgLen)
	rx := make([]byte, msgLen)

	EncodeHeader(tx, h)
	if mode == Write {
		copy(tx[HeaderSize:], buf)
	}

	if t.logger != nil {
		t.logger.Printf("spi: %s addr=0x%06x len=%d", mode, addr, size)
	}

	if err := t.ex.Exchange(tx, rx); err != nil {
		return &TransportError{Op: mode, Addr: addr, Len: size, Err: err}
	}

	if mode == Read {
		copy(buf, rx[HeaderSize:])
	}
	return nil
}

// ---- CHUNKING ----

// chunk is one transaction's slice of a logical buffer.
type chunk struct {
	off  int    // byte offset into the logical buffer
	len  int    // payload bytes
	addr uint64 // device word address
}

// chunks splits total bytes starting at word address base into pieces of at
// most max bytes. The address advances by one per 4 bytes sent.
func chunks(base uint64, total, max int) []chunk {
	var out []chunk

	c := chunk{addr: base}
	for c.off < total {
		c.len = total - c.off
		if c.len > max {
			c.len = max
		}
		out = append(out, c)

		c.off += c.len
		c.addr += uint64(c.len / 4)
	}
	return out
}

// SendChunked transfers buf of any length as consecutive transactions
// starting at word address base.
// The first failing chunk aborts the transfer and its error is returned.
// Chunks already sent are not rolled back.
func (t *Transport) SendChunked(mode AccessMode, base uint64, buf []byte) error {
	if !mode.valid() {
		return fmt.Errorf("%w: access mode %d is neither read nor write", ErrInvalidArgument, uint8(mode))
	}
	if len(buf)%4 != 0 {
		return fmt.Errorf("%w: buffer of %d bytes is not a whole number of words", ErrInvalidArgument, len(buf))
	}

	for _, c := range chunks(base, len(buf), t.maxPayload) {
		if err := t.SendPacked(mode, c.addr, buf[c.off:c.off+c.len]); err != nil {
			return err
		}
	}
	return nil
}

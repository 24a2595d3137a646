// internal/spi/serialbridge/bridge.go

// Package serialbridge talks to a USB/UART-to-SPI bridge.
//
// Frame format (both directions, no framing beyond the length):
//
//	host -> bridge: LEN_HI LEN_LO TX[LEN]
//	bridge -> host: RX[LEN]
//
// The bridge asserts chip-select for the whole TX burst and returns the bytes
// clocked in on MISO.
package serialbridge

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// MaxFrameSize is the largest burst the bridge buffers.
const MaxFrameSize = 0xFFFF

type Config struct {
	Address  string
	BaudRate int
	Timeout  time.Duration
}

// Bridge serializes exchanges on one serial port.
type Bridge struct {
	mu   sync.Mutex
	port io.ReadWriteCloser
}

// Open opens the serial port as 8N1.
func Open(cfg Config) (*Bridge, error) {
	if cfg.Address == "" {
		return nil, errors.New("serialbridge: address required")
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serialbridge: open %s: %w", cfg.Address, err)
	}
	return New(p), nil
}

// New wraps an already open port.
func New(port io.ReadWriteCloser) *Bridge {
	return &Bridge{port: port}
}

// Exchange sends tx as one burst and reads len(rx) bytes back.
func (b *Bridge) Exchange(tx, rx []byte) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("serialbridge: tx/rx length mismatch %d != %d", len(tx), len(rx))
	}
	if len(tx) > MaxFrameSize {
		return fmt.Errorf("serialbridge: frame of %d bytes exceeds %d", len(tx), MaxFrameSize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	pkt := make([]byte, 2+len(tx))
	pkt[0] = byte(len(tx) >> 8)
	pkt[1] = byte(len(tx))
	copy(pkt[2:], tx)

	if err := writeAll(b.port, pkt); err != nil {
		return fmt.Errorf("serialbridge: write: %w", err)
	}
	if _, err := io.ReadFull(b.port, rx); err != nil {
		return fmt.Errorf("serialbridge: read: %w", err)
	}
	return nil
}

// Close closes the serial port.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.port.Close()
}

// ---- helpers ----

func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// internal/spi/modbusbridge/client.go

// Package modbusbridge reaches the switch through a Modbus TCP SPI gateway.
//
// One SPI transfer is one Read/Write Multiple Registers (FC 23) request:
// the gateway writes TX into its frame window starting at Register, clocks it
// out, and answers with the bytes clocked in, read from the same window.
package modbusbridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// MaxFrameSize is the largest SPI frame one FC 23 request can carry
// (121 write registers, 2 bytes each).
const MaxFrameSize = 121 * 2

// registerExchanger is the part of modbus.Client the bridge uses.
type registerExchanger interface {
	ReadWriteMultipleRegisters(readAddress, readQuantity, writeAddress, writeQuantity uint16, value []byte) ([]byte, error)
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Register uint16
	Timeout  time.Duration
}

// Client is a single TCP connection to one gateway.
// It serializes requests: one SPI transfer at a time.
type Client struct {
	mu       sync.Mutex
	handler  *modbus.TCPClientHandler
	client   registerExchanger
	register uint16
}

// Dial connects to the gateway.
func Dial(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusbridge: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbusbridge: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler:  h,
		client:   modbus.NewClient(h),
		register: cfg.Register,
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// Exchange performs one SPI transfer through the gateway.
func (c *Client) Exchange(tx, rx []byte) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("modbusbridge: tx/rx length mismatch %d != %d", len(tx), len(rx))
	}
	if len(tx)%2 != 0 {
		return fmt.Errorf("modbusbridge: frame of %d bytes is not a whole number of registers", len(tx))
	}
	if len(tx) > MaxFrameSize {
		return fmt.Errorf("modbusbridge: frame of %d bytes exceeds %d", len(tx), MaxFrameSize)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	qty := uint16(len(tx) / 2)

	resp, err := c.client.ReadWriteMultipleRegisters(c.register, qty, c.register, qty, tx)
	if err != nil {
		return err
	}
	if len(resp) != len(rx) {
		return fmt.Errorf("modbusbridge: short response: got=%d want=%d", len(resp), len(rx))
	}

	copy(rx, resp)
	return nil
}

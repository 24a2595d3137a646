// internal/spi/errors.go
package spi

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a request the protocol layer refuses before any bus activity.
var ErrInvalidArgument = errors.New("spi: invalid argument")

// ErrMessageTooLong reports a payload that does not fit one transaction.
// It also matches ErrInvalidArgument.
var ErrMessageTooLong = fmt.Errorf("%w: message too long", ErrInvalidArgument)

// TransportError wraps a failed bus exchange.
// The exchanger's error is kept verbatim and reachable through Unwrap.
type TransportError struct {
	Op   AccessMode
	Addr uint64
	Len  int
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("spi: %s addr=0x%06x len=%d: %v", e.Op, e.Addr, e.Len, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

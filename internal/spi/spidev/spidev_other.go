// internal/spi/spidev/spidev_other.go

//go:build !linux

package spidev

import "errors"

// Device is unavailable outside Linux.
type Device struct{}

// Open always fails: spidev is a Linux interface.
func Open(cfg Config) (*Device, error) {
	return nil, errors.New("spidev: only supported on linux")
}

func (d *Device) Exchange(tx, rx []byte) error { return errClosed }

func (d *Device) Close() error { return nil }

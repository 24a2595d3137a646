// internal/spi/spidev/spidev.go

// Package spidev exchanges SPI frames through the Linux spidev character device.
package spidev

import "errors"

// Config is the minimal spidev setup.
type Config struct {
	Path        string // e.g. /dev/spidev0.1
	Mode        uint8  // SPI mode 0..3
	BitsPerWord uint8
	SpeedHz     uint32
}

var errClosed = errors.New("spidev: device closed")

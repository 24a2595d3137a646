// internal/spi/spidev/spidev_linux.go

//go:build linux

package spidev

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// /dev/spidevB.C ioctl commands (linux/spi/spidev.h, magic 'k').
const (
	spiIocWrMode        = 0x40016b01 // _IOW('k', 1, __u8)
	spiIocWrBitsPerWord = 0x40016b03 // _IOW('k', 3, __u8)
	spiIocWrMaxSpeedHz  = 0x40046b04 // _IOW('k', 4, __u32)
	spiIocMessage1      = 0x40206b00 // _IOW('k', 0, char[32]): one spi_ioc_transfer
)

// spiIocTransfer mirrors struct spi_ioc_transfer (32 bytes).
type spiIocTransfer struct {
	txBuf          uint64
	rxBuf          uint64
	len            uint32
	speedHz        uint32
	delayUsecs     uint16
	bitsPerWord    uint8
	csChange       uint8
	txNbits        uint8
	rxNbits        uint8
	wordDelayUsecs uint8
	pad            uint8
}

// Device is an open spidev node.
type Device struct {
	fd  int
	cfg Config
}

// Open opens cfg.Path and applies mode, word size and clock.
func Open(cfg Config) (*Device, error) {
	if cfg.Path == "" {
		return nil, errors.New("spidev: path required")
	}

	fd, err := unix.Open(cfg.Path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("spidev: open %s: %w", cfg.Path, err)
	}
	d := &Device{fd: fd, cfg: cfg}

	mode := cfg.Mode
	bits := cfg.BitsPerWord
	speed := cfg.SpeedHz

	if err := d.ioctl(spiIocWrMode, unsafe.Pointer(&mode)); err != nil {
		unix.Close(fd)
		return nil, chk("set mode", err)
	}
	if err := d.ioctl(spiIocWrBitsPerWord, unsafe.Pointer(&bits)); err != nil {
		unix.Close(fd)
		return nil, chk("set bits per word", err)
	}
	if err := d.ioctl(spiIocWrMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		unix.Close(fd)
		return nil, chk("set max speed", err)
	}

	return d, nil
}

// Exchange clocks tx out and rx in within one chip-select assertion.
func (d *Device) Exchange(tx, rx []byte) error {
	if d.fd < 0 {
		return errClosed
	}
	if len(tx) != len(rx) {
		return fmt.Errorf("spidev: tx/rx length mismatch %d != %d", len(tx), len(rx))
	}
	if len(tx) == 0 {
		return nil
	}

	xfer := spiIocTransfer{
		txBuf:       uint64(uintptr(unsafe.Pointer(&tx[0]))),
		rxBuf:       uint64(uintptr(unsafe.Pointer(&rx[0]))),
		len:         uint32(len(tx)),
		speedHz:     d.cfg.SpeedHz,
		bitsPerWord: d.cfg.BitsPerWord,
	}
	err := d.ioctl(spiIocMessage1, unsafe.Pointer(&xfer))
	runtime.KeepAlive(tx)
	runtime.KeepAlive(rx)
	return chk("transfer", err)
}

// Close releases the file descriptor.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

func (d *Device) ioctl(op uintptr, arg unsafe.Pointer) error {
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), op, uintptr(arg))
	if e != 0 {
		return e
	}
	return nil
}

func chk(tag string, err error) error {
	if err != nil {
		err = fmt.Errorf("spidev: %s: %w", tag, err)
	}
	return err
}

// internal/spi/builder.go
package spi

import (
	"fmt"
	"log"
	"time"

	cfg "github.com/tamzrod/sja1105-tool/internal/config"
	"github.com/tamzrod/sja1105-tool/internal/spi/modbusbridge"
	"github.com/tamzrod/sja1105-tool/internal/spi/serialbridge"
	"github.com/tamzrod/sja1105-tool/internal/spi/spidev"
)

// Build opens the configured exchanger and wraps it in a Transport.
// ONE attempt: a device that cannot be opened fails the command.
// The returned closer releases the exchanger.
func Build(d cfg.DeviceConfig, logger *log.Logger) (*Transport, func() error, error) {
	var (
		ex         Exchanger
		closer     func() error
		maxPayload = d.MaxPayload
	)

	switch d.Transport {
	case cfg.TransportSPIDev:
		dev, err := spidev.Open(spidev.Config{
			Path:        d.SPIDev.Path,
			Mode:        d.SPIDev.Mode,
			BitsPerWord: d.SPIDev.BitsPerWord,
			SpeedHz:     d.SPIDev.SpeedHz,
		})
		if err != nil {
			return nil, nil, err
		}
		ex, closer = dev, dev.Close

	case cfg.TransportSerial:
		b, err := serialbridge.Open(serialbridge.Config{
			Address:  d.Serial.Address,
			BaudRate: d.Serial.BaudRate,
			Timeout:  time.Duration(d.Serial.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		ex, closer = b, b.Close

	case cfg.TransportModbus:
		c, err := modbusbridge.Dial(modbusbridge.Config{
			Endpoint: d.Modbus.Endpoint,
			UnitID:   d.Modbus.UnitID,
			Register: d.Modbus.Register,
			Timeout:  time.Duration(d.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		ex, closer = c, c.Close

		// FC 23 frames are smaller than the switch's own limit.
		maxPayload = clampPayload(maxPayload, modbusbridge.MaxFrameSize)

	default:
		return nil, nil, fmt.Errorf("spi: unknown transport %q", d.Transport)
	}

	opts := []Option{WithMaxPayload(maxPayload)}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return New(ex, opts...), closer, nil
}

// payloadLimit is the largest word-aligned payload fitting a frame of n bytes.
func payloadLimit(frame int) int {
	return (frame - HeaderSize) &^ 3
}

// clampPayload lowers maxPayload to what a frame of n bytes can carry.
// 0 means no configured limit.
func clampPayload(maxPayload, frame int) int {
	if lim := payloadLimit(frame); maxPayload == 0 || maxPayload > lim {
		return lim
	}
	return maxPayload
}

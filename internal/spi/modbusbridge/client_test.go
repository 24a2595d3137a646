// internal/spi/modbusbridge/client_test.go
package modbusbridge

import (
	"bytes"
	"errors"
	"testing"
)

// ---- fake gateway ----

type fakeGateway struct {
	calls []fc23Call
	reply []byte
	err   error
}

type fc23Call struct {
	readAddr, readQty   uint16
	writeAddr, writeQty uint16
	value               []byte
}

func (f *fakeGateway) ReadWriteMultipleRegisters(readAddress, readQuantity, writeAddress, writeQuantity uint16, value []byte) ([]byte, error) {
	f.calls = append(f.calls, fc23Call{
		readAddr:  readAddress,
		readQty:   readQuantity,
		writeAddr: writeAddress,
		writeQty:  writeQuantity,
		value:     append([]byte(nil), value...),
	})
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

// ---- tests ----

func TestExchange_OneFC23PerTransfer(t *testing.T) {
	gw := &fakeGateway{reply: []byte{0, 0, 0, 0, 0xDE, 0xAD, 0xBE, 0xEF}}
	c := &Client{client: gw, register: 40}

	tx := []byte{0x04, 0x00, 0x00, 0x00, 0, 0, 0, 0}
	rx := make([]byte, len(tx))

	if err := c.Exchange(tx, rx); err != nil {
		t.Fatalf("Exchange() err=%v", err)
	}

	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(gw.calls))
	}
	call := gw.calls[0]
	if call.readAddr != 40 || call.writeAddr != 40 || call.readQty != 4 || call.writeQty != 4 {
		t.Fatalf("unexpected request geometry: %+v", call)
	}
	if !bytes.Equal(call.value, tx) {
		t.Fatalf("tx not forwarded verbatim: % X", call.value)
	}
	if !bytes.Equal(rx, gw.reply) {
		t.Fatalf("rx = % X", rx)
	}
}

func TestExchange_RejectsOversizeFrame(t *testing.T) {
	gw := &fakeGateway{}
	c := &Client{client: gw}

	n := MaxFrameSize + 2
	if err := c.Exchange(make([]byte, n), make([]byte, n)); err == nil {
		t.Fatalf("expected oversize error")
	}
	if len(gw.calls) != 0 {
		t.Fatalf("oversize frame reached the gateway")
	}
}

func TestExchange_ShortResponse(t *testing.T) {
	c := &Client{client: &fakeGateway{reply: []byte{1, 2}}}
	if err := c.Exchange(make([]byte, 8), make([]byte, 8)); err == nil {
		t.Fatalf("expected short response error")
	}
}

func TestExchange_GatewayErrorVerbatim(t *testing.T) {
	boom := errors.New("modbus: exception '4' (server device failure)")
	c := &Client{client: &fakeGateway{err: boom}}

	err := c.Exchange(make([]byte, 8), make([]byte, 8))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDial_RequiresEndpoint(t *testing.T) {
	if _, err := Dial(Config{}); err == nil {
		t.Fatalf("expected error")
	}
}

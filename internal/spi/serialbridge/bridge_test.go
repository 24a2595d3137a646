// internal/spi/serialbridge/bridge_test.go
package serialbridge

import (
	"bytes"
	"errors"
	"testing"
)

// ---- fake port ----

type fakePort struct {
	written bytes.Buffer
	reply   *bytes.Reader
	closed  bool
}

func (f *fakePort) Write(p []byte) (int, error) { return f.written.Write(p) }
func (f *fakePort) Read(p []byte) (int, error)  { return f.reply.Read(p) }
func (f *fakePort) Close() error                { f.closed = true; return nil }

// ---- tests ----

func TestExchange_FramesAndReadsBack(t *testing.T) {
	port := &fakePort{reply: bytes.NewReader([]byte{0xAA, 0xBB, 0xCC, 0xDD, 1, 2, 3, 4})}
	b := New(port)

	tx := []byte{0x80, 0x00, 0x00, 0x10, 9, 9, 9, 9}
	rx := make([]byte, len(tx))

	if err := b.Exchange(tx, rx); err != nil {
		t.Fatalf("Exchange() err=%v", err)
	}

	want := append([]byte{0x00, 0x08}, tx...)
	if !bytes.Equal(port.written.Bytes(), want) {
		t.Fatalf("written = % X, want % X", port.written.Bytes(), want)
	}
	if !bytes.Equal(rx, []byte{0xAA, 0xBB, 0xCC, 0xDD, 1, 2, 3, 4}) {
		t.Fatalf("rx = % X", rx)
	}
}

func TestExchange_ShortReplyFails(t *testing.T) {
	port := &fakePort{reply: bytes.NewReader([]byte{1, 2})}
	b := New(port)

	err := b.Exchange(make([]byte, 8), make([]byte, 8))
	if err == nil {
		t.Fatalf("expected error on short reply")
	}
}

func TestExchange_LengthMismatch(t *testing.T) {
	b := New(&fakePort{reply: bytes.NewReader(nil)})
	if err := b.Exchange(make([]byte, 8), make([]byte, 4)); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

type failingWriter struct{ fakePort }

func (f *failingWriter) Write(p []byte) (int, error) { return 0, errors.New("cable unplugged") }

func TestExchange_WriteErrorPropagates(t *testing.T) {
	b := New(&failingWriter{fakePort{reply: bytes.NewReader(nil)}})
	if err := b.Exchange(make([]byte, 4), make([]byte, 4)); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestClose(t *testing.T) {
	port := &fakePort{reply: bytes.NewReader(nil)}
	if err := New(port).Close(); err != nil || !port.closed {
		t.Fatalf("Close() err=%v closed=%v", err, port.closed)
	}
}

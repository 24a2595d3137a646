// internal/packing/packing_test.go
package packing

import (
	"bytes"
	"testing"
)

func TestPack_BitNumbering(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		value uint64
		hi    int
		lo    int
		want  []byte
	}{
		{"bit 31 is msb of byte 0", 4, 1, 31, 31, []byte{0x80, 0x00, 0x00, 0x00}},
		{"bit 0 is lsb of last byte", 4, 1, 0, 0, []byte{0x00, 0x00, 0x00, 0x01}},
		{"field spans bytes", 4, 0x3F, 30, 25, []byte{0x7E, 0x00, 0x00, 0x00}},
		{"value truncated to width", 4, 0xFF, 3, 0, []byte{0x00, 0x00, 0x00, 0x0F}},
		{"full 64-bit word", 8, 0x0102030405060708, 63, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"high field in larger buffer", 8, 0x5, 63, 61, []byte{0xA0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			Pack(buf, tt.value, tt.hi, tt.lo)
			if !bytes.Equal(buf, tt.want) {
				t.Fatalf("Pack() = % X, want % X", buf, tt.want)
			}
		})
	}
}

func TestPack_PreservesNeighbours(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	Pack(buf, 0, 15, 8)
	if !bytes.Equal(buf, []byte{0xFF, 0xFF, 0x00, 0xFF}) {
		t.Fatalf("unexpected buffer % X", buf)
	}
}

func TestUnpack(t *testing.T) {
	buf := []byte{0x12, 0x34, 0x56, 0x78}

	if got := Unpack(buf, 31, 0); got != 0x12345678 {
		t.Fatalf("Unpack(31,0) = 0x%X", got)
	}
	if got := Unpack(buf, 15, 8); got != 0x56 {
		t.Fatalf("Unpack(15,8) = 0x%X", got)
	}
	if got := Unpack(buf, 31, 28); got != 0x1 {
		t.Fatalf("Unpack(31,28) = 0x%X", got)
	}
}

func TestPackUnpack_OddOffsets(t *testing.T) {
	buf := make([]byte, 32)
	Pack(buf, 0x1FF, 113, 105)
	Pack(buf, 2, 98, 97)
	Pack(buf, 0xABC, 53, 42)

	if got := Unpack(buf, 113, 105); got != 0x1FF {
		t.Fatalf("base field = 0x%X", got)
	}
	if got := Unpack(buf, 98, 97); got != 2 {
		t.Fatalf("speed field = %d", got)
	}
	if got := Unpack(buf, 53, 42); got != 0xABC {
		t.Fatalf("vlanid field = 0x%X", got)
	}
}

func TestPack_InvalidRangePanics(t *testing.T) {
	tests := []struct {
		name   string
		hi, lo int
	}{
		{"hi below lo", 3, 4},
		{"negative lo", 3, -1},
		{"beyond buffer", 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for [%d:%d]", tt.hi, tt.lo)
				}
			}()
			Pack(make([]byte, 4), 1, tt.hi, tt.lo)
		})
	}
}

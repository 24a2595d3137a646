// internal/device/device_test.go
package device

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

type fakeRegs struct {
	vals  map[uint64]uint64
	err   error
	reads []uint64
}

func (f *fakeRegs) ReadInt(addr uint64, size int) (uint64, error) {
	f.reads = append(f.reads, addr)
	if f.err != nil {
		return 0, f.err
	}
	return f.vals[addr], nil
}

func TestResync_Families(t *testing.T) {
	tests := []struct {
		name   string
		id     uint64
		prodID uint64
		family Family
		part   string
	}{
		{"E", IDSJA1105E, 0, FamilyET, "SJA1105E"},
		{"T", IDSJA1105T, 0, FamilyET, "SJA1105T"},
		{"P", IDSJA1105PR, PartNoP << 4, FamilyPQRS, "SJA1105P"},
		{"R", IDSJA1105PR, PartNoR<<4 | 0x3, FamilyPQRS, "SJA1105R"},
		{"Q", IDSJA1105QS, PartNoQ << 4, FamilyPQRS, "SJA1105Q"},
		{"S", IDSJA1105QS, 0xF00000 | PartNoS<<4, FamilyPQRS, "SJA1105S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs := &fakeRegs{vals: map[uint64]uint64{
				RegDeviceID: tt.id,
				RegProdID:   tt.prodID,
			}}
			var out bytes.Buffer
			d := New(regs, log.New(&out, "", 0))

			if err := d.Resync(); err != nil {
				t.Fatalf("Resync() err=%v", err)
			}
			if d.Family() != tt.family {
				t.Fatalf("family = %s, want %s", d.Family(), tt.family)
			}
			if d.Part() != tt.part {
				t.Fatalf("part = %q, want %q", d.Part(), tt.part)
			}
			if !strings.Contains(out.String(), tt.part) {
				t.Fatalf("log line missing part name: %q", out.String())
			}
		})
	}
}

func TestResync_ETSkipsProdID(t *testing.T) {
	regs := &fakeRegs{vals: map[uint64]uint64{RegDeviceID: IDSJA1105T}}
	if err := New(regs, nil).Resync(); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(regs.reads) != 1 {
		t.Fatalf("expected only the device id read, got %v", regs.reads)
	}
}

func TestResync_UnknownID(t *testing.T) {
	regs := &fakeRegs{vals: map[uint64]uint64{RegDeviceID: 0xFFFFFFFF}}
	d := New(regs, nil)

	err := d.Resync()
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("err = %v, want ErrUnknownDevice", err)
	}
	if d.Family() != FamilyUnknown {
		t.Fatalf("family = %s after failed resync", d.Family())
	}
}

func TestResync_ReadError(t *testing.T) {
	boom := errors.New("bus down")
	err := New(&fakeRegs{err: boom}, nil).Resync()
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestFamily_String(t *testing.T) {
	if FamilyET.String() != "E/T" || FamilyPQRS.String() != "P/Q/R/S" || FamilyUnknown.String() != "unknown" {
		t.Fatalf("unexpected family names")
	}
}

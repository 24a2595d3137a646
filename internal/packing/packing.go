// internal/packing/packing.go
package packing

import "fmt"

// Bit numbering convention used by every SJA1105 register and table:
// bit 0 is the least significant bit of the LAST byte of the buffer,
// bit 8*len(buf)-1 is the most significant bit of the first byte.
// Bit i therefore lives in byte len(buf)-1-i/8, position i%8.

// Pack writes the low (hi-lo+1) bits of value into buf[hi:lo].
// Bits of value above the field width are discarded.
// Other bits of buf are left untouched.
func Pack(buf []byte, value uint64, hi, lo int) {
	width := checkRange(buf, hi, lo)
	value &= mask(width)

	for i := 0; i < width; i++ {
		bit := lo + i
		idx := len(buf) - 1 - bit/8
		shift := uint(bit % 8)

		if value&(1<<uint(i)) != 0 {
			buf[idx] |= 1 << shift
		} else {
			buf[idx] &^= 1 << shift
		}
	}
}

// Unpack extracts buf[hi:lo] as an unsigned value.
func Unpack(buf []byte, hi, lo int) uint64 {
	width := checkRange(buf, hi, lo)

	var v uint64
	for i := 0; i < width; i++ {
		bit := lo + i
		idx := len(buf) - 1 - bit/8
		if buf[idx]&(1<<uint(bit%8)) != 0 {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Field ranges are constants in the callers; a bad one is a programming error.
func checkRange(buf []byte, hi, lo int) int {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("packing: invalid bit range [%d:%d]", hi, lo))
	}
	if hi >= 8*len(buf) {
		panic(fmt.Sprintf("packing: bit %d out of range for %d-byte buffer", hi, len(buf)))
	}
	width := hi - lo + 1
	if width > 64 {
		panic(fmt.Sprintf("packing: field [%d:%d] wider than 64 bits", hi, lo))
	}
	return width
}

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

package shared

import (
	"math/bits"
)

// NumBits returns the number of bits required to represent i.
func NumBits(i uint64) int {
	return bits.Len64(i)
}

// NumBytes returns the number of bytes required to hold numBits.
func NumBytes(numBits uint) uint {
	return (numBits + 7) / 8
}

// UintBE decodes a big-endian unsigned value of up to 8 bytes.
func UintBE(b []byte) uint64 {
	var v uint64
	for _, byt := range b {
		v = v<<8 | uint64(byt)
	}
	return v
}

// PutUintBE encodes v big-endian into b, keeping its len(b) least-significant bytes.
func PutUintBE(b []byte, v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

// MaxUint returns the largest value representable with numBits.
func MaxUint(numBits uint) uint64 {
	if numBits >= 64 {
		return ^uint64(0)
	}
	return 1<<numBits - 1
}

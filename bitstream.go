// Package bitstream provides wrappers for byte channels to allow
// bit-granularity access to the stream, following the MSB pattern, where
// most-significant bits are written/read first.
//
// BitReader and BitWriter each hold a single partial byte. Byte-level calls
// go straight to the underlying channel: BitReader.ReadByte skips past
// the bits left in the current byte without returning them, and the next bit
// read picks up where it left off. BitWriter.WriteByte zero-pads and emits
// the pending byte before writing its own.
//
// Neither type is safe for concurrent use.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// String returns the bitstring symbol of b.
func (b Bit) String() string {
	if b {
		return "1"
	}
	return "0"
}

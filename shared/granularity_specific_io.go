package shared

import (
	"io"

	"github.com/spacemeshos/bitstream"
)

// GranSpecificReader provides a wrapper for io.Reader to allow granularity-specific
// access to the stream according to the defined item size, where bit-granular and
// byte-granular sizes are supported via a specialized code path.
type GranSpecificReader struct {
	ReadNext       func() ([]byte, error)
	ReadNextUintBE func() (uint64, error)
}

// NewGranSpecificReader returns a reader of itemBitSize-wide items.
// Items are returned right-aligned in the smallest number of bytes holding them.
func NewGranSpecificReader(rd io.Reader, itemBitSize uint) *GranSpecificReader {
	gsReader := new(GranSpecificReader)
	if itemBitSize%8 == 0 {
		// Byte-granular reader is using the underlying reader directly.
		gsReader.ReadNext = func() ([]byte, error) {
			b := make([]byte, itemBitSize/8)
			_, err := io.ReadFull(rd, b)
			if err != nil {
				return nil, err
			}
			return b, nil
		}
		gsReader.ReadNextUintBE = func() (uint64, error) {
			if itemBitSize > 64 {
				return 0, bitstream.ErrInvalidAmount
			}
			b, err := gsReader.ReadNext()
			if err != nil {
				return 0, err
			}
			return UintBE(b), nil
		}
	} else {
		// Bit-granular reader is using bitstream as a wrapper for the underlying reader.
		br := bitstream.NewReader(rd)
		gsReader.ReadNextUintBE = func() (uint64, error) {
			return br.ReadUint64BE(int(itemBitSize))
		}
		gsReader.ReadNext = func() ([]byte, error) {
			v, err := br.ReadUint64BE(int(itemBitSize))
			if err != nil {
				return nil, err
			}
			b := make([]byte, NumBytes(itemBitSize))
			PutUintBE(b, v)
			return b, nil
		}
	}

	return gsReader
}

// GranSpecificWriter provides a wrapper for io.Writer to allow granularity-specific
// access to the stream according to the defined item size, where bit-granular and
// byte-granular sizes are supported via a specialized code path.
type GranSpecificWriter struct {
	Write       func([]byte) error
	WriteUintBE func(uint64) error
	Flush       func() error
}

// NewGranSpecificWriter returns a writer of itemBitSize-wide items.
// Bit-granular items are packed back to back; Flush zero-pads the last byte.
func NewGranSpecificWriter(w io.Writer, itemBitSize uint) *GranSpecificWriter {
	gsWriter := new(GranSpecificWriter)
	if itemBitSize%8 == 0 {
		// Byte-granular writer is using the underlying writer directly.
		gsWriter.Write = func(b []byte) error {
			if uint(len(b))*8 != itemBitSize {
				return ErrItemSize
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
			return nil
		}
		gsWriter.WriteUintBE = func(v uint64) error {
			if itemBitSize > 64 {
				return bitstream.ErrInvalidAmount
			}
			b := make([]byte, itemBitSize/8)
			PutUintBE(b, v)
			return gsWriter.Write(b)
		}
		gsWriter.Flush = func() error {
			if f, ok := w.(interface{ Flush() error }); ok {
				return f.Flush()
			}
			return nil
		}
	} else {
		// Bit-granular writer is using bitstream as a wrapper for the underlying writer.
		bw := bitstream.NewWriter(w)
		gsWriter.Write = func(b []byte) error {
			if uint(len(b)) != NumBytes(itemBitSize) {
				return ErrItemSize
			}
			return bw.WriteUint64BE(UintBE(b), int(itemBitSize))
		}
		gsWriter.WriteUintBE = func(v uint64) error {
			return bw.WriteUint64BE(v, int(itemBitSize))
		}
		gsWriter.Flush = bw.Flush
	}

	return gsWriter
}

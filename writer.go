package bitstream

import (
	"io"

	"go.uber.org/zap"
)

// BitWriter writes bits to a byte sink.
type BitWriter struct {
	sink    Sink
	pending byte
	count   uint8 // bits set in pending; 8 means pending was emitted.
	logger  *zap.Logger
}

// NewWriter returns a new instance of BitWriter.
// If w doesn't implement Sink, each byte is handed to w.Write on its own and
// Flush is forwarded to w only when it has a Flush() error method.
func NewWriter(w io.Writer, opts ...OptionFunc) *BitWriter {
	options := applyOpts(opts...)

	bw := new(BitWriter)
	bw.sink = newSink(w)
	bw.logger = options.logger
	return bw
}

// WriteBit writes a single bit to the stream, MSB first.
// The byte is emitted as soon as its 8th bit is set.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bw.count == 8 {
		bw.pending = 0
		bw.count = 0
	}

	if bit {
		bw.pending |= 1 << (7 - bw.count)
	}

	bw.count++
	if bw.count == 8 {
		return bw.sink.WriteByte(bw.pending)
	}

	return nil
}

// WriteBits writes a bitstring. Only the '0' symbol is written as a zero
// bit; any other symbol, NUL included, is written as a one.
func (bw *BitWriter) WriteBits(bits string) error {
	for _, c := range bits {
		if err := bw.WriteBit(c != '0'); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint64BE writes the numBits LS bits of val, most-significant bit first.
func (bw *BitWriter) WriteUint64BE(val uint64, numBits int) error {
	if numBits < 0 || numBits > 64 {
		return ErrInvalidAmount
	}

	for numBits > 0 {
		numBits--
		if err := bw.WriteBit(val>>uint(numBits)&1 == 1); err != nil {
			return err
		}
	}

	return nil
}

// WriteByte writes a single byte to the sink. A partially written byte is
// zero-padded and emitted first, so b always starts on a byte boundary.
func (bw *BitWriter) WriteByte(b byte) error {
	if _, err := bw.Align(); err != nil {
		return err
	}
	return bw.sink.WriteByte(b)
}

// Write implements io.Writer with the same semantics as WriteByte.
func (bw *BitWriter) Write(p []byte) (int, error) {
	if _, err := bw.Align(); err != nil {
		return 0, err
	}
	for i, b := range p {
		if err := bw.sink.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Align emits the pending byte right-padded with zeros, if 1 to 7 bits were
// written since the last byte boundary. It returns the number of padding bits.
func (bw *BitWriter) Align() (int, error) {
	if bw.count == 0 || bw.count == 8 {
		return 0, nil
	}

	padded := int(8 - bw.count)
	bw.count = 8
	bw.logger.Debug("bitstream: writer aligned", zap.Int("padded", padded))

	return padded, bw.sink.WriteByte(bw.pending)
}

// Flush aligns the stream and flushes the sink.
func (bw *BitWriter) Flush() error {
	if _, err := bw.Align(); err != nil {
		return err
	}
	return bw.sink.Flush()
}

// Buffered returns the number of bits written since the last byte boundary.
func (bw *BitWriter) Buffered() int {
	if bw.count == 8 {
		return 0
	}
	return int(bw.count)
}

package bitstream

import (
	"io"
	"strings"

	"go.uber.org/zap"
)

// BitReader reads bits from a byte source.
type BitReader struct {
	source   Source
	current  byte
	consumed uint8 // bits already taken from current; 8 means a new byte is due.
	logger   *zap.Logger
}

// NewReader returns a new instance of BitReader.
// If r doesn't implement io.ByteReader, it is read one byte at a time.
func NewReader(r io.Reader, opts ...OptionFunc) *BitReader {
	options := applyOpts(opts...)

	br := new(BitReader)
	br.source = newSource(r)
	br.consumed = 8
	br.logger = options.logger
	return br
}

// ReadBit reads the next single bit from the stream, MSB first.
// A new byte is fetched from the source only when the current one is used up.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.consumed == 8 {
		byt, err := br.source.ReadByte()
		if err == io.EOF {
			br.logger.Debug("bitstream: end of stream")
			return Zero, ErrEndOfStream
		}
		if err != nil {
			return Zero, err
		}
		br.current = byt
		br.consumed = 0
	}
	br.consumed++

	return Bit(br.current>>(8-br.consumed)&1 == 1), nil
}

// ReadBits reads the next amount bits and returns them as a bitstring of
// '0' and '1' symbols. On error, the bits read so far are returned along
// with it; they are not pushed back.
func (br *BitReader) ReadBits(amount int) (string, error) {
	if amount < 0 {
		return "", ErrInvalidAmount
	}

	var sb strings.Builder
	sb.Grow(min(amount, 64))
	for i := 0; i < amount; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(bit.String())
	}

	return sb.String(), nil
}

// ReadUint64BE reads the next numBits from the stream as an unsigned value,
// most-significant bit first.
func (br *BitReader) ReadUint64BE(numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, ErrInvalidAmount
	}

	var val uint64
	for ; numBits > 0; numBits-- {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}

		val <<= 1
		if bit {
			val |= 1
		}
	}

	return val, nil
}

// ReadByte reads the next byte directly from the source, regardless of the
// alignment. It neither finishes nor aligns the current byte: its unread bits
// are not returned first, and later bit reads still go through them. Call
// Align beforehand to skip them.
//
// io.EOF from the source is returned as is.
func (br *BitReader) ReadByte() (byte, error) {
	return br.source.ReadByte()
}

// Read implements io.Reader with the same semantics as ReadByte.
func (br *BitReader) Read(p []byte) (int, error) {
	for i := range p {
		byt, err := br.source.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = byt
	}
	return len(p), nil
}

// Align discards the unread bits of the current byte, so the next read
// starts at a byte boundary. It returns the number of discarded bits.
func (br *BitReader) Align() int {
	skipped := int(8 - br.consumed)
	br.consumed = 8

	if skipped > 0 {
		br.logger.Debug("bitstream: reader aligned", zap.Int("skipped", skipped))
	}
	return skipped
}

// Buffered returns the number of bits of the current byte not read yet.
func (br *BitReader) Buffered() int {
	return int(8 - br.consumed)
}

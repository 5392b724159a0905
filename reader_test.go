package bitstream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitstream"
)

func TestReader_MSBFirst(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xA5}))
	bits, err := r.ReadBits(8)
	req.NoError(err)
	req.Equal("10100101", bits)
}

func TestReader_ReusesCurrentByte(t *testing.T) {
	req := require.New(t)

	// iotest.OneByteReader hides io.ByteReader, so the unbuffered adapter is used.
	src := bytes.NewReader([]byte{0x80, 0x01})
	r := NewReader(iotest.OneByteReader(src))

	bit, err := r.ReadBit()
	req.NoError(err)
	req.Equal(One, bit)
	req.Equal(1, src.Len())
	req.Equal(7, r.Buffered())

	for i := 0; i < 7; i++ {
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(Zero, bit)
	}
	req.Equal(1, src.Len())
	req.Equal(0, r.Buffered())

	bits, err := r.ReadBits(8)
	req.NoError(err)
	req.Equal("00000001", bits)
	req.Equal(0, src.Len())
}

func TestReader_Align(t *testing.T) {
	req := require.New(t)

	for k := 1; k < 8; k++ {
		r := NewReader(bytes.NewReader([]byte{0xFF, 0x0F}))
		_, err := r.ReadBits(k)
		req.NoError(err)
		req.Equal(8-k, r.Align())
		req.Equal(0, r.Align())

		bits, err := r.ReadBits(8)
		req.NoError(err)
		req.Equal("00001111", bits)
	}
}

func TestReader_AlignFresh(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFF}))
	require.Equal(t, 0, r.Align())
}

func TestReader_ReadByteBypassesCurrentByte(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xF8, 0x3C, 0x81}))
	bits, err := r.ReadBits(3)
	req.NoError(err)
	req.Equal("111", bits)

	b, err := r.ReadByte()
	req.NoError(err)
	req.Equal(byte(0x3C), b)
	req.Equal(5, r.Buffered())

	// Bit reads finish the byte they started before fetching the next one.
	bits, err = r.ReadBits(5)
	req.NoError(err)
	req.Equal("11000", bits)

	bits, err = r.ReadBits(8)
	req.NoError(err)
	req.Equal("10000001", bits)
}

func TestReader_AlignBeforeReadByte(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xFF, 0x3C, 0x81}))
	_, err := r.ReadBits(3)
	req.NoError(err)
	req.Equal(5, r.Align())

	b, err := r.ReadByte()
	req.NoError(err)
	req.Equal(byte(0x3C), b)

	bits, err := r.ReadBits(8)
	req.NoError(err)
	req.Equal("10000001", bits)
}

func TestReader_Read(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xF0, 0x01, 0x02, 0x03}))
	_, err := r.ReadBit()
	req.NoError(err)

	p := make([]byte, 2)
	n, err := r.Read(p)
	req.NoError(err)
	req.Equal(2, n)
	req.Equal([]byte{0x01, 0x02}, p)

	n, err = r.Read(p)
	req.Equal(1, n)
	req.Equal(io.EOF, err)
	req.Equal(byte(0x03), p[0])

	// The rest of 0xF0 is still there for bit reads.
	bits, err := r.ReadBits(7)
	req.NoError(err)
	req.Equal("1110000", bits)
	_, err = r.ReadBit()
	req.Equal(bitstream.ErrEndOfStream, err)
}

func TestReader_ReadBitsHugeAmount(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xFF}))
	bits, err := r.ReadBits(1 << 62)
	req.Equal(bitstream.ErrEndOfStream, err)
	req.Equal("11111111", bits)
}

func TestReader_ReadBitsZero(t *testing.T) {
	req := require.New(t)

	src := bytes.NewReader([]byte{0xFF})
	r := NewReader(src)
	bits, err := r.ReadBits(0)
	req.NoError(err)
	req.Equal("", bits)
	req.Equal(1, src.Len())
}

func TestReader_ReadBitsNegative(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xFF}))
	bits, err := r.ReadBits(-1)
	req.ErrorIs(err, bitstream.ErrInvalidAmount)
	req.Equal("", bits)
}

func TestEOF_0(t *testing.T) {
	req := require.New(t)

	_, err := NewReader(bytes.NewReader(nil)).ReadBit()
	req.Equal(bitstream.ErrEndOfStream, err)
	req.True(errors.Is(err, io.EOF))
	_, err = NewReader(bytes.NewReader(nil)).ReadByte()
	req.Equal(io.EOF, err)
	_, err = NewReader(iotest.OneByteReader(bytes.NewReader(nil))).ReadBit()
	req.Equal(bitstream.ErrEndOfStream, err)
}

func TestEOF_1(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xA5}))
	_, err := r.ReadBits(5)
	req.NoError(err)

	bits, err := r.ReadBits(4)
	req.Equal(bitstream.ErrEndOfStream, err)
	req.Equal("101", bits)
	req.Equal(0, r.Buffered())

	// The reader stays at end of stream.
	_, err = r.ReadBit()
	req.Equal(bitstream.ErrEndOfStream, err)
	req.Equal(0, r.Align())
}

func TestEOF_2(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0xAA, 0x55}))
	first, err := r.ReadBits(8)
	req.NoError(err)

	second, err := r.ReadBits(16)
	req.Equal(bitstream.ErrEndOfStream, err)
	req.Equal("10101010", first)
	req.Equal("01010101", second)
}

func TestBadReader(t *testing.T) {
	req := require.New(t)

	r := NewReader(iotest.ErrReader(ErrBadReader))
	_, err := r.ReadBit()
	req.Equal(ErrBadReader, err)
	_, err = r.ReadByte()
	req.Equal(ErrBadReader, err)
	req.Equal(0, r.Buffered())
}

var ErrBadReader = errors.New("bad reader")

package bitstream_test

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bitstream"
)

const (
	Zero = bitstream.Zero
	One  = bitstream.One
)

var (
	NewWriter = bitstream.NewWriter
	NewReader = bitstream.NewReader
)

func TestRoundTrip(t *testing.T) {
	req := require.New(t)

	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 64; n++ {
		bits := make([]bitstream.Bit, n)
		for i := range bits {
			bits[i] = rng.Intn(2) == 1
		}

		buf := bytes.NewBuffer(nil)
		w := NewWriter(buf)
		for _, bit := range bits {
			req.NoError(w.WriteBit(bit))
		}
		req.NoError(w.Flush())
		req.Equal((n+7)/8, buf.Len())

		r := NewReader(buf)
		for i, want := range bits {
			bit, err := r.ReadBit()
			req.NoError(err)
			req.Equal(want, bit, "bit %d of %d", i, n)
		}
	}
}

func TestUint64BE(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	r := NewReader(buf)
	from := uint64(1)
	to := uint64(1 << 12)

	for i := from; i < to; i++ {
		req.NoError(w.WriteUint64BE(i, numBits(i)))
		req.NoError(w.WriteUint64BE(i, 64))
	}
	req.NoError(w.Flush())

	for i := from; i < to; i++ {
		num, err := r.ReadUint64BE(numBits(i))
		req.NoError(err)
		req.Equal(i, num)
		num, err = r.ReadUint64BE(64)
		req.NoError(err)
		req.Equal(i, num)
	}
}

func TestUint64BE_InvalidAmount(t *testing.T) {
	req := require.New(t)

	w := NewWriter(bytes.NewBuffer(nil))
	req.ErrorIs(w.WriteUint64BE(1, 65), bitstream.ErrInvalidAmount)
	req.ErrorIs(w.WriteUint64BE(1, -1), bitstream.ErrInvalidAmount)

	r := NewReader(bytes.NewReader(make([]byte, 16)))
	_, err := r.ReadUint64BE(65)
	req.ErrorIs(err, bitstream.ErrInvalidAmount)
}

func TestString(t *testing.T) {
	req := require.New(t)

	s := "a string"
	br := NewReader(strings.NewReader(s))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for {
		bit, err := br.ReadBit()
		if err == bitstream.ErrEndOfStream {
			break
		}
		req.NoError(err)
		req.NoError(bw.WriteBit(bit))
	}

	req.Equal(s, buf.String())
}

func TestMixedBitsAndBytes(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)

	req.NoError(w.WriteBits("101"))
	req.NoError(w.WriteByte(0xFF))
	req.NoError(w.WriteBits("11110000"))
	req.NoError(w.WriteBits("1"))
	req.NoError(w.Flush())
	req.Equal([]byte{0xA0, 0xFF, 0xF0, 0x80}, buf.Bytes())

	r := NewReader(buf)
	bits, err := r.ReadBits(3)
	req.NoError(err)
	req.Equal("101", bits)
	req.Equal(5, r.Align())

	b, err := r.ReadByte()
	req.NoError(err)
	req.Equal(byte(0xFF), b)

	bits, err = r.ReadBits(9)
	req.NoError(err)
	req.Equal("111100001", bits)
}

func TestPipe(t *testing.T) {
	req := require.New(t)

	pr, pw := io.Pipe()
	want := "1100101011111110000000011"

	var eg errgroup.Group
	eg.Go(func() error {
		bw := NewWriter(bufio.NewWriter(pw))
		if err := bw.WriteBits(want); err != nil {
			return pw.CloseWithError(err)
		}
		if err := bw.Flush(); err != nil {
			return pw.CloseWithError(err)
		}
		return pw.Close()
	})

	var got string
	eg.Go(func() error {
		br := NewReader(pr)
		bits, err := br.ReadBits(len(want))
		got = bits
		if err != nil {
			return err
		}
		// The writer padded the last byte with 7 zero bits.
		if n := br.Align(); n != 7 {
			return io.ErrUnexpectedEOF
		}
		_, err = br.ReadBit()
		if err != bitstream.ErrEndOfStream {
			return io.ErrUnexpectedEOF
		}
		return nil
	})

	req.NoError(eg.Wait())
	req.Equal(want, got)
}

func TestLogger(t *testing.T) {
	req := require.New(t)
	logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf, bitstream.WithLogger(logger))
	req.NoError(w.WriteBits("11"))
	req.NoError(w.Flush())

	r := NewReader(buf, bitstream.WithLogger(logger))
	_, err := r.ReadBit()
	req.NoError(err)
	req.Equal(7, r.Align())
	_, err = r.ReadBit()
	req.ErrorIs(err, bitstream.ErrEndOfStream)
}

func numBits(i uint64) int {
	n := 0
	for ; i > 0; i >>= 1 {
		n++
	}
	return n
}

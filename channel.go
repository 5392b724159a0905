package bitstream

import (
	"io"
)

// Source is the byte channel a BitReader consumes.
// ReadByte must return io.EOF once no more bytes are available.
type Source interface {
	io.ByteReader
}

// Sink is the byte channel a BitWriter emits to.
type Sink interface {
	io.ByteWriter
	Flush() error
}

type flusher interface {
	Flush() error
}

// byteSource adapts an io.Reader to a Source, one byte per call and without
// read-ahead, so the wrapped reader is never advanced past what was consumed.
type byteSource struct {
	r   io.Reader
	buf [1]byte
}

func (s *byteSource) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		// ReadFull reports io.EOF only when nothing was read.
		return 0, err
	}
	return s.buf[0], nil
}

// byteSink adapts an io.Writer to a Sink. Flush is forwarded when the
// wrapped writer has one.
type byteSink struct {
	w   io.Writer
	buf [1]byte
}

func (s *byteSink) WriteByte(b byte) error {
	s.buf[0] = b
	n, err := s.w.Write(s.buf[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

func (s *byteSink) Flush() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func newSource(r io.Reader) Source {
	if src, ok := r.(Source); ok {
		return src
	}
	return &byteSource{r: r}
}

func newSink(w io.Writer) Sink {
	if sink, ok := w.(Sink); ok {
		return sink
	}
	return &byteSink{w: w}
}

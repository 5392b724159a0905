package bitstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEndOfStream is returned by bit-level reads when the source has no
	// more bytes. It wraps io.EOF.
	ErrEndOfStream = fmt.Errorf("bitstream: end of stream reached while reading next bit: %w", io.EOF)

	// ErrInvalidAmount is returned for negative bit counts and for
	// fixed-width values wider than 64 bits.
	ErrInvalidAmount = errors.New("bitstream: invalid amount of bits")
)

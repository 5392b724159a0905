package persistence

import (
	"os"

	"github.com/spacemeshos/bitstream"
)

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0o600

// Reader is a file-backed byte source for a bitstream.BitReader.
type Reader interface {
	bitstream.Source
	Read(p []byte) (n int, err error)
	Width() (uint64, error)
	Close() error
}

// Writer is a file-backed byte sink for a bitstream.BitWriter.
type Writer interface {
	bitstream.Sink
	Write(p []byte) (n int, err error)
	Width() (uint64, error)
	Close() (os.FileInfo, error)
}

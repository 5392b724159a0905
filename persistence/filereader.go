package persistence

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type FileReader struct {
	file   *os.File
	buf    *bufio.Reader
	logger *zap.Logger
}

// A compile time check to ensure that FileReader fully implements the Reader interface.
var _ Reader = (*FileReader)(nil)

func NewFileReader(name string, opts ...OptionFunc) (*FileReader, error) {
	options := applyOpts(opts...)

	file, err := os.OpenFile(name, os.O_RDONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bits reader: %w", err)
	}
	options.logger.Debug("persistence: opened file for reading", zap.String("file", name))

	return &FileReader{
		file:   file,
		buf:    bufio.NewReader(file),
		logger: options.logger,
	}, nil
}

func (r *FileReader) ReadByte() (byte, error) {
	return r.buf.ReadByte()
}

func (r *FileReader) Read(p []byte) (int, error) {
	return r.buf.Read(p)
}

// Width returns the file size in bits.
func (r *FileReader) Width() (uint64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()) * 8, nil
}

func (r *FileReader) Close() error {
	r.buf = nil
	r.logger.Debug("persistence: closing file", zap.String("file", r.file.Name()))
	return r.file.Close()
}

package persistence

import (
	"bufio"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// FileWriter writes to a temporary file next to the destination, which is
// moved into place atomically on Close. Until then, the destination is left
// untouched.
type FileWriter struct {
	filename string
	tmp      string
	file     *os.File
	buf      *bufio.Writer
	logger   *zap.Logger
}

// A compile time check to ensure that FileWriter fully implements the Writer interface.
var _ Writer = (*FileWriter)(nil)

func NewFileWriter(filename string, opts ...OptionFunc) (*FileWriter, error) {
	options := applyOpts(opts...)

	f, err := os.OpenFile(fmt.Sprintf("%s.tmp", filename), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("create temporary file: %w", err)
	}
	options.logger.Debug("persistence: opened file for writing", zap.String("file", f.Name()))

	return &FileWriter{
		filename: filename,
		tmp:      f.Name(),
		file:     f,
		buf:      bufio.NewWriter(f),
		logger:   options.logger,
	}, nil
}

func (w *FileWriter) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

func (w *FileWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Width returns the number of bits written so far, including buffered ones.
func (w *FileWriter) Width() (uint64, error) {
	info, err := w.file.Stat()
	if err != nil {
		return 0, err
	}

	return (uint64(info.Size()) + uint64(w.buf.Buffered())) * 8, nil
}

func (w *FileWriter) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush disk writer: %w", err)
	}

	return nil
}

// Close flushes the buffered bytes and publishes the file under its final name.
func (w *FileWriter) Close() (os.FileInfo, error) {
	if err := w.buf.Flush(); err != nil {
		return nil, err
	}
	w.buf = nil

	err := w.file.Close()
	w.file = nil
	if err != nil {
		return nil, fmt.Errorf("failed to close tmp file %s: %w", w.tmp, err)
	}

	if err := atomic.ReplaceFile(w.tmp, w.filename); err != nil {
		return nil, fmt.Errorf("atomic replace: %w", err)
	}
	w.logger.Debug("persistence: file written", zap.String("file", w.filename))

	return os.Stat(w.filename)
}

// Discard closes and removes the temporary file without publishing it.
// It may be called after a failed Close.
func (w *FileWriter) Discard() error {
	w.buf = nil
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		if err != nil {
			return err
		}
	}

	if err := os.Remove(w.tmp); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package cmd

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitstream/persistence"
)

const stdio = "-"

type input struct {
	io.Reader
	close func() error
	size  func() (uint64, error)
}

// openInput opens name for reading, or stdin for "" and "-".
func (c *cli) openInput(cmd *cobra.Command, name string) (*input, error) {
	if name == "" || name == stdio {
		return &input{
			Reader: bufio.NewReader(cmd.InOrStdin()),
			close:  func() error { return nil },
			size:   func() (uint64, error) { return 0, nil },
		}, nil
	}

	r, err := persistence.NewFileReader(name, persistence.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	return &input{
		Reader: r,
		close:  r.Close,
		size: func() (uint64, error) {
			bits, err := r.Width()
			return bits / 8, err
		},
	}, nil
}

type output struct {
	io.Writer
	// finish flushes and publishes the output.
	finish func() error
	// abort drops the output if it was not finished.
	abort func()
}

// openOutput opens name for writing, or stdout for "" and "-".
// A file only appears under name once finish succeeds.
func (c *cli) openOutput(cmd *cobra.Command, name string) (*output, error) {
	if name == "" || name == stdio {
		w := bufio.NewWriter(cmd.OutOrStdout())
		return &output{
			Writer: w,
			finish: w.Flush,
			abort:  func() {},
		}, nil
	}

	w, err := persistence.NewFileWriter(name, persistence.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	done := false
	return &output{
		Writer: w,
		finish: func() error {
			if _, err := w.Close(); err != nil {
				return err
			}
			done = true
			return nil
		},
		abort: func() {
			if done {
				return
			}
			if err := w.Discard(); err != nil {
				c.logger.Warn("failed to discard output", zap.String("file", name), zap.Error(err))
			}
		},
	}, nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitstream"
)

func newDecodeCmd(c *cli) *cobra.Command {
	var (
		numBits int
		skip    int
		group   int
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode bytes into a bitstring",
		Long: `Decode prints the bits of a file (stdin if omitted or -), most-significant
bit first. By default the whole input is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := stdio
			if len(args) == 1 {
				name = args[0]
			}
			if skip < 0 {
				return fmt.Errorf("invalid `skip`; expected: >= 0, given: %d", skip)
			}

			in, err := c.openInput(cmd, name)
			if err != nil {
				return err
			}
			defer in.close()

			br := bitstream.NewReader(in.Reader, bitstream.WithLogger(c.logger))
			if _, err := br.ReadBits(skip); err != nil {
				return fmt.Errorf("failed to skip %d bits: %w", skip, err)
			}

			var bits string
			if numBits >= 0 {
				bits, err = br.ReadBits(numBits)
			} else {
				bits, err = readAll(br)
			}
			if err != nil {
				return fmt.Errorf("failed to read bits: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), groupBits(bits, group))

			size, err := in.size()
			if err != nil {
				return err
			}
			c.logger.Debug("decoded",
				zap.Int("bits", len(bits)),
				zap.String("input", name),
				zap.String("size", bytefmt.ByteSize(size)),
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&numBits, "bits", "n", -1, "number of bits to print (-1 for all)")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of leading bits to skip")
	cmd.Flags().IntVar(&group, "group", 0, "separate groups of this many bits with a space (0 disables)")
	return cmd
}

// readAll reads bits until the end of the stream.
func readAll(br *bitstream.BitReader) (string, error) {
	var sb strings.Builder
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, bitstream.ErrEndOfStream) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(bit.String())
	}
}

func groupBits(bits string, size int) string {
	if size <= 0 || len(bits) <= size {
		return bits
	}

	var sb strings.Builder
	for i := 0; i < len(bits); i += size {
		if i > 0 {
			sb.WriteByte(' ')
		}
		end := i + size
		if end > len(bits) {
			end = len(bits)
		}
		sb.WriteString(bits[i:end])
	}
	return sb.String()
}

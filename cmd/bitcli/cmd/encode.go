package cmd

import (
	"fmt"
	"io"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitstream"
)

func newEncodeCmd(c *cli) *cobra.Command {
	var outName string

	cmd := &cobra.Command{
		Use:   "encode [bitstring...]",
		Short: "Encode a bitstring into bytes",
		Long: `Encode writes the bits of the given bitstrings, most-significant bit first.
Without arguments the bitstring is read from stdin. Whitespace is ignored;
'0' is a zero bit and every other symbol is a one bit. The last byte is
padded with zero bits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bits := strings.Join(args, "")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				bits = string(data)
			}
			bits = strings.Join(strings.Fields(bits), "")

			out, err := c.openOutput(cmd, outName)
			if err != nil {
				return err
			}
			defer out.abort()

			bw := bitstream.NewWriter(out.Writer, bitstream.WithLogger(c.logger))
			if err := bw.WriteBits(bits); err != nil {
				return fmt.Errorf("failed to write bits: %w", err)
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("failed to flush bits: %w", err)
			}
			if err := out.finish(); err != nil {
				return err
			}

			numBytes := (len([]rune(bits)) + 7) / 8
			c.logger.Info("encoded",
				zap.Int("bits", len([]rune(bits))),
				zap.String("size", bytefmt.ByteSize(uint64(numBytes))),
				zap.String("output", outName),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outName, "output", "o", stdio, "output file (- for stdout)")
	return cmd
}

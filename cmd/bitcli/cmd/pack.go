package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitstream/shared"
)

func newPackCmd(c *cli) *cobra.Command {
	var outName string

	cmd := &cobra.Command{
		Use:   "pack [value...]",
		Short: "Pack unsigned values into fixed-width items",
		Long: `Pack writes each decimal value as a --width bit item, most-significant bit
first, with no gaps between items. Without arguments values are read from
stdin, separated by whitespace. The last byte is padded with zero bits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := args
			if len(args) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Split(bufio.ScanWords)
				for sc.Scan() {
					values = append(values, sc.Text())
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			width := c.cfg.Width
			out, err := c.openOutput(cmd, outName)
			if err != nil {
				return err
			}
			defer out.abort()

			gsWriter := shared.NewGranSpecificWriter(out.Writer, width)
			for _, s := range values {
				v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", s, err)
				}
				if v > shared.MaxUint(width) {
					return fmt.Errorf("invalid value; expected: <= %d, given: %d", shared.MaxUint(width), v)
				}
				if err := gsWriter.WriteUintBE(v); err != nil {
					return fmt.Errorf("failed to write item: %w", err)
				}
			}
			if err := gsWriter.Flush(); err != nil {
				return fmt.Errorf("failed to flush items: %w", err)
			}
			if err := out.finish(); err != nil {
				return err
			}

			numBits := uint64(width) * uint64(len(values))
			c.logger.Info("packed",
				zap.Int("items", len(values)),
				zap.Uint("width", width),
				zap.String("size", bytefmt.ByteSize((numBits+7)/8)),
				zap.String("output", outName),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outName, "output", "o", stdio, "output file (- for stdout)")
	return cmd
}

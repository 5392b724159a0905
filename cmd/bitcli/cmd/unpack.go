package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitstream/shared"
)

func newUnpackCmd(c *cli) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "unpack [file]",
		Short: "Print fixed-width items as unsigned values",
		Long: `Unpack reads --width bit items, most-significant bit first, and prints one
decimal value per line. Without --count it stops when fewer than --width bits
remain, so zero padding narrower than an item is not printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := stdio
			if len(args) == 1 {
				name = args[0]
			}

			in, err := c.openInput(cmd, name)
			if err != nil {
				return err
			}
			defer in.close()

			gsReader := shared.NewGranSpecificReader(in.Reader, c.cfg.Width)
			for i := 0; count < 0 || i < count; i++ {
				v, err := gsReader.ReadNextUintBE()
				if count < 0 && isEndOfData(err) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to read item %d: %w", i, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", -1, "number of items to print (-1 for all)")
	return cmd
}

// isEndOfData reports whether err marks the end of the input, including a
// trailing partial item.
func isEndOfData(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spacemeshos/sha256-simd"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitstream"
)

func newDumpCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print a table of offsets, hex bytes and bits",
		Args:  cobra.MaximumNArgs(1),
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

			rows, total, digest, err := dumpRows(in.Reader, int(c.cfg.RowBytes))
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"offset", "hex", "bits"})
			table.SetBorder(true)
			table.SetAutoWrapText(false)
			table.AppendBulk(rows)
			table.SetFooter([]string{
				bytefmt.ByteSize(total),
				"sha256",
				hex.EncodeToString(digest),
			})
			table.Render()
			return nil
		},
	}
}

// dumpRows splits r into rows of rowBytes bytes. Bits are read through a
// BitReader, one row per byte boundary.
func dumpRows(r io.Reader, rowBytes int) ([][]string, uint64, []byte, error) {
	h := sha256.New()
	br := bitstream.NewReader(io.TeeReader(r, h))

	var (
		rows  [][]string
		total uint64
	)
	for {
		row := make([]byte, 0, rowBytes)
		bits := make([]string, 0, rowBytes)
		for len(row) < rowBytes {
			s, err := br.ReadBits(8)
			if errors.Is(err, bitstream.ErrEndOfStream) {
				break
			}
			if err != nil {
				return nil, 0, nil, fmt.Errorf("failed to read bits: %w", err)
			}
			bits = append(bits, s)
			row = append(row, bitsToByte(s))
		}
		if len(row) == 0 {
			break
		}

		rows = append(rows, []string{
			fmt.Sprintf("%08x", total),
			hex.EncodeToString(row),
			strings.Join(bits, " "),
		})
		total += uint64(len(row))
		if len(row) < rowBytes {
			break
		}
	}

	return rows, total, h.Sum(nil), nil
}

func bitsToByte(s string) byte {
	var b byte
	for _, c := range s {
		b <<= 1
		if c == '1' {
			b |= 1
		}
	}
	return b
}

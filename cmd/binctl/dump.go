package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

var (
	dumpWidth    int
	dumpMode     string
	dumpPreview  string
	dumpOnlyDiff bool
	dumpColor    bool
)

var (
	dumpDiffStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	dumpMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true)
	dumpAddrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpWidth, "width", 0, "Bytes per row: 8, 16 or 32 (default from config)")
	cmd.Flags().StringVar(&dumpMode, "mode", "", "Segment mode: hex or binary (default from config)")
	cmd.Flags().StringVar(&dumpPreview, "preview", "", "Preview charset: ascii or latin1 (default from config)")
	cmd.Flags().BoolVar(&dumpOnlyDiff, "only-diff", false, "Show only rows that contain differences")
	cmd.Flags().BoolVar(&dumpColor, "color", false, "Color differing bytes even when not writing to a terminal")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <fileA> <fileB>",
		Short: "Dump two files side by side",
		Long: `The dump command prints both files as rows of hex or binary segments,
side by side, with a preview column for each. Rows containing a difference
are marked with '*'.

Example:
  binctl dump old.bin new.bin
  binctl dump old.bin new.bin --width 8 --mode binary
  binctl dump old.bin new.bin --only-diff --preview latin1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// DumpRow is the JSON form of one side-by-side row.
type DumpRow struct {
	Address  string `json:"address"`
	A        string `json:"a"`
	B        string `json:"b"`
	PreviewA string `json:"preview_a"`
	PreviewB string `json:"preview_b"`
	Differs  bool   `json:"differs"`
}

func runDump(args []string) error {
	s, err := openPair(args[0], args[1], dumpWidth)
	if err != nil {
		return err
	}
	if dumpMode != "" {
		m, err := rows.ParseMode(dumpMode)
		if err != nil {
			return err
		}
		s.SetMode(m)
	}
	if dumpPreview != "" {
		p, err := rows.ParsePreview(dumpPreview)
		if err != nil {
			return err
		}
		s.SetPreview(p)
	}

	rowsA, rowsB := s.Rows(types.SideA), s.Rows(types.SideB)
	n := s.RowCount()

	if jsonOut {
		out := make([]DumpRow, 0, n)
		for i := 0; i < n; i++ {
			a, b := rowAt(rowsA, i), rowAt(rowsB, i)
			if dumpOnlyDiff && !a.HasDifference && !b.HasDifference {
				continue
			}
			out = append(out, DumpRow{
				Address:  rowAddress(a, b),
				A:        a.Text(),
				B:        b.Text(),
				PreviewA: a.ASCII,
				PreviewB: b.ASCII,
				Differs:  a.HasDifference || b.HasDifference,
			})
		}
		return printJSON(out)
	}

	color := colorEnabled(dumpColor)
	if color && dumpColor {
		// lipgloss drops styling when stdout is not a terminal unless told otherwise
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
	cols := s.Width()*s.Mode().TokenLen() + s.Width() - 1
	var sb strings.Builder
	for i := 0; i < n; i++ {
		a, b := rowAt(rowsA, i), rowAt(rowsB, i)
		differs := a.HasDifference || b.HasDifference
		if dumpOnlyDiff && !differs {
			continue
		}

		sb.Reset()
		marker := " "
		if differs {
			marker = "*"
		}
		addr := rowAddress(a, b)
		if color {
			marker = dumpMarkerStyle.Render(marker)
			addr = dumpAddrStyle.Render(addr)
		}
		sb.WriteString(marker)
		sb.WriteString(" ")
		sb.WriteString(addr)
		sb.WriteString("  ")
		writeSegments(&sb, a, cols, color)
		sb.WriteString("  |  ")
		writeSegments(&sb, b, cols, color)
		sb.WriteString("  |")
		sb.WriteString(padRight(a.ASCII, s.Width()))
		sb.WriteString("|")
		sb.WriteString(padRight(b.ASCII, s.Width()))
		sb.WriteString("|\n")
		printInfo("%s", sb.String())
	}
	return nil
}

func rowAt(rs []rows.Row, i int) rows.Row {
	if i < len(rs) {
		return rs[i]
	}
	return rows.Row{}
}

func rowAddress(a, b rows.Row) string {
	if a.Len() > 0 {
		return a.Address()
	}
	return b.Address()
}

// writeSegments writes a row's segments padded to cols visible characters.
func writeSegments(sb *strings.Builder, r rows.Row, cols int, color bool) {
	visible := 0
	for i, seg := range r.Segments {
		if i > 0 {
			sb.WriteByte(' ')
			visible++
		}
		if color && seg.IsDifference {
			sb.WriteString(dumpDiffStyle.Render(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
		visible += len(seg.Text)
	}
	if visible < cols {
		sb.WriteString(strings.Repeat(" ", cols-visible))
	}
}

func padRight(s string, n int) string {
	if c := len([]rune(s)); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

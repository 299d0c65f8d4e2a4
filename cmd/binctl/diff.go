package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/pkg/diff"
	"github.com/joshuapare/binkit/pkg/session"
	"github.com/joshuapare/binkit/pkg/types"
)

var diffLimit int

func init() {
	cmd := newDiffCmd()
	cmd.Flags().IntVar(&diffLimit, "limit", 0, "Show at most N differences (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <fileA> <fileB>",
		Short: "Compare two files and list differing offsets",
		Long: `The diff command compares two files byte by byte. Offsets past the end
of the shorter file compare as 0xFF, so trailing 0xFF bytes in the longer
file do not count as differences.

Example:
  binctl diff old.bin new.bin
  binctl diff old.bin new.bin --limit 20
  binctl diff old.bin new.bin --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

// DiffResult is the JSON form of a comparison.
type DiffResult struct {
	FileA       string      `json:"file_a"`
	FileB       string      `json:"file_b"`
	SizeA       int         `json:"size_a"`
	SizeB       int         `json:"size_b"`
	Total       int         `json:"total"`
	Values      int         `json:"values"`
	AExhausted  int         `json:"a_exhausted"`
	BExhausted  int         `json:"b_exhausted"`
	Truncated   bool        `json:"truncated,omitempty"`
	Differences []DiffEntry `json:"differences"`
}

// DiffEntry is one differing offset.
type DiffEntry struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	A       string `json:"a"`
	B       string `json:"b"`
}

func runDiff(args []string) error {
	s, err := openPair(args[0], args[1], 0)
	if err != nil {
		return err
	}

	diffs := s.Differences()
	shown := diffs
	if diffLimit > 0 && len(shown) > diffLimit {
		shown = shown[:diffLimit]
	}

	if jsonOut {
		return printJSON(newDiffResult(s, shown, len(shown) < len(diffs)))
	}

	printSummary(s)
	for _, d := range shown {
		printInfo("  %s  %-14s  A: %02X  B: %02X\n", d.Address(), d.Kind, d.A, d.B)
	}
	if rest := len(diffs) - len(shown); rest > 0 {
		printInfo("  ... %s more\n", humanize.Comma(int64(rest)))
	}
	return nil
}

func newDiffResult(s *session.Session, shown []diff.Difference, truncated bool) DiffResult {
	a, b := s.Buffer(types.SideA), s.Buffer(types.SideB)
	sum := s.Summary()
	res := DiffResult{
		FileA:       a.DisplayName(),
		FileB:       b.DisplayName(),
		SizeA:       a.Len(),
		SizeB:       b.Len(),
		Total:       sum.Total,
		Values:      sum.Values,
		AExhausted:  sum.AExhausted,
		BExhausted:  sum.BExhausted,
		Truncated:   truncated,
		Differences: make([]DiffEntry, 0, len(shown)),
	}
	for _, d := range shown {
		res.Differences = append(res.Differences, DiffEntry{
			Address: d.Address(),
			Type:    d.Kind.String(),
			A:       fmt.Sprintf("%02X", d.A),
			B:       fmt.Sprintf("%02X", d.B),
		})
	}
	return res
}

// printSummary prints the file sizes and per-kind counts.
func printSummary(s *session.Session) {
	a, b := s.Buffer(types.SideA), s.Buffer(types.SideB)
	printInfo("A: %s (%s)\n", a.DisplayName(), humanize.Bytes(uint64(a.Len())))
	printInfo("B: %s (%s)\n", b.DisplayName(), humanize.Bytes(uint64(b.Len())))

	sum := s.Summary()
	if sum.Total == 0 {
		printInfo("Files are identical\n")
		return
	}
	printInfo("%s differences (%s value, %s past end of A, %s past end of B)\n",
		humanize.Comma(int64(sum.Total)),
		humanize.Comma(int64(sum.Values)),
		humanize.Comma(int64(sum.AExhausted)),
		humanize.Comma(int64(sum.BExhausted)))
}

package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/pkg/edit"
	"github.com/joshuapare/binkit/pkg/types"
)

var (
	copyRows   string
	copyAll    bool
	copyWidth  int
	copyOutput string
)

func init() {
	cmd := newCopyCmd()
	cmd.Flags().StringVar(&copyRows, "rows", "", "Rows to copy, e.g. 0,3,5-7")
	cmd.Flags().BoolVar(&copyAll, "all", false, "Copy every row")
	cmd.Flags().IntVar(&copyWidth, "width", 0, "Bytes per row: 8, 16 or 32 (default from config)")
	cmd.Flags().StringVarP(&copyOutput, "output", "o", "", "Write the result to a different file")
	rootCmd.AddCommand(cmd)
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy rows from one file into another",
		Long: `The copy command overwrites rows of dst with the same rows of src.
Rows are numbered from 0 at the chosen width. A row that does not fit
inside dst is skipped; dst never grows.

Example:
  binctl copy good.bin bad.bin --rows 0,3
  binctl copy good.bin bad.bin --rows 4-9 --width 8
  binctl copy good.bin bad.bin --all --output fixed.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(args)
		},
	}
	return cmd
}

func runCopy(args []string) error {
	if copyAll == (copyRows != "") {
		return types.Validationf("specify exactly one of --rows or --all")
	}

	s, err := openPair(args[0], args[1], copyWidth)
	if err != nil {
		return err
	}

	var res edit.CopyResult
	if copyAll {
		res, err = s.CopyAll(types.SideA)
	} else {
		var idx []int
		idx, err = parseRowList(copyRows)
		if err != nil {
			return err
		}
		res, err = s.CopyRows(types.SideA, idx)
	}
	if err != nil {
		return err
	}

	if res.Copied > 0 {
		if copyOutput != "" {
			err = s.SaveAs(types.SideB, copyOutput)
		} else {
			err = s.Save(types.SideB)
		}
		if err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(res)
	}
	if res.Copied == 0 {
		printInfo("Nothing copied (%d row(s) skipped)\n", res.Skipped)
		return nil
	}
	printInfo("Copied %d row(s), %d byte(s) into %s", res.Copied, res.Bytes, s.Buffer(types.SideB).Path)
	if res.Skipped > 0 {
		printInfo(" (%d skipped)", res.Skipped)
	}
	printInfo("\n")
	printVerbose("%d difference(s) remain\n", len(s.Differences()))
	return nil
}

// parseRowList parses "0,3,5-7" into row indices.
func parseRowList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(lo)
		if err != nil || start < 0 {
			return nil, types.Validationf("invalid row %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(hi)
			if err != nil || end < start {
				return nil, types.Validationf("invalid row range %q", part)
			}
		}
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, types.Validationf("no rows given")
	}
	return out, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/pkg/report"
)

var (
	reportOutput string
	reportFormat string
)

func init() {
	cmd := newReportCmd()
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&reportFormat, "format", "text", "Report format (text, json)")
	rootCmd.AddCommand(cmd)
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <fileA> <fileB>",
		Short: "Write a comparison report",
		Long: `The report command writes the full list of differences between two
files, one line per differing offset.

Example:
  binctl report old.bin new.bin
  binctl report old.bin new.bin --output diff.txt
  binctl report old.bin new.bin --format json -o diff.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args)
		},
	}
	return cmd
}

func runReport(args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return err
	}
	if jsonOut {
		format = report.FormatJSON
	}

	s, err := openPair(args[0], args[1], 0)
	if err != nil {
		return err
	}

	if reportOutput != "" {
		if err := s.ExportTo(reportOutput, format); err != nil {
			return err
		}
		printInfo("Report written to %s (%d differences)\n", reportOutput, len(s.Differences()))
		return nil
	}

	text, err := s.Report(format)
	if err != nil {
		return err
	}
	printInfo("%s", text)
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/internal/logger"
	"github.com/joshuapare/binkit/internal/mmfile"
	"github.com/joshuapare/binkit/internal/writer"
	"github.com/joshuapare/binkit/pkg/edit"
	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

var (
	patchOffset string
	patchData   string
	patchMode   string
	patchOutput string
	patchDryRun bool
)

func init() {
	cmd := newPatchCmd()
	cmd.Flags().StringVar(&patchOffset, "offset", "", "Offset to overwrite at (decimal or 0x hex)")
	cmd.Flags().StringVar(&patchData, "data", "", `Replacement bytes, e.g. "DE AD BE EF"`)
	cmd.Flags().StringVar(&patchMode, "mode", "hex", "Token format of --data (hex, binary)")
	cmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Write to a different file")
	cmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Validate the patch without writing")
	_ = cmd.MarkFlagRequired("offset")
	_ = cmd.MarkFlagRequired("data")
	rootCmd.AddCommand(cmd)
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file>",
		Short: "Overwrite bytes at an offset",
		Long: `The patch command overwrites bytes in place. The file length never
changes: a patch that would run past the end is rejected. The file is
replaced atomically.

Example:
  binctl patch fw.bin --offset 0x10 --data "DE AD BE EF"
  binctl patch fw.bin --offset 4 --data "10101010" --mode binary
  binctl patch fw.bin --offset 0 --data "00" --output fw-patched.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(args)
		},
	}
	return cmd
}

func runPatch(args []string) error {
	path := args[0]

	off, err := strconv.ParseInt(patchOffset, 0, 64)
	if err != nil {
		return types.Validationf("invalid offset %q", patchOffset)
	}
	mode, err := rows.ParseMode(patchMode)
	if err != nil {
		return err
	}
	repl, err := edit.ParseTokens(patchData, mode)
	if err != nil {
		return err
	}

	data, err := mmfile.ReadOwned(path)
	if err != nil {
		return types.WrapIO(err, "read %s", path)
	}
	patched, err := edit.Apply(data, off, repl)
	if err != nil {
		return fmt.Errorf("patch %s: %w", path, err)
	}

	out := path
	if patchOutput != "" {
		out = patchOutput
	}
	printVerbose("Patching %d byte(s) at 0x%X in %s\n", len(repl), off, path)

	if patchDryRun {
		printInfo("Dry run: would write %d byte(s) at 0x%08X to %s\n", len(repl), off, out)
		return nil
	}
	if err := writer.WriteFile(out, patched); err != nil {
		return types.WrapIO(err, "write %s", out)
	}
	logger.Info("patched file", "path", out, "offset", off, "bytes", len(repl))
	printInfo("Patched %d byte(s) at 0x%08X in %s\n", len(repl), off, out)
	return nil
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/binkit/internal/watch"
	"github.com/joshuapare/binkit/pkg/session"
	"github.com/joshuapare/binkit/pkg/types"
)

var watchDebounce time.Duration

func init() {
	cmd := newWatchCmd()
	cmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Wait this long after a change before comparing")
	rootCmd.AddCommand(cmd)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <fileA> <fileB>",
		Short: "Re-compare two files whenever either changes",
		Long: `The watch command prints the comparison summary, then prints it again
every time either file is written, until interrupted.

Example:
  binctl watch build/old.bin build/new.bin
  binctl watch a.bin b.bin --debounce 1s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, args)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, args []string) error {
	s, err := openPair(args[0], args[1], 0)
	if err != nil {
		return err
	}
	printSummary(s)

	w, err := watch.New(args, watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	sides, err := sideIndex(args)
	if err != nil {
		return err
	}

	printVerbose("Watching %s and %s\n", args[0], args[1])
	err = w.Run(ctx, func(path string) {
		reloadSide(s, sides, path)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// sideIndex maps the absolute path of each argument to its side. When both
// arguments name the same file it maps to A.
func sideIndex(args []string) (map[string]types.Side, error) {
	m := make(map[string]types.Side, 2)
	for i := len(args) - 1; i >= 0; i-- {
		abs, err := filepath.Abs(args[i])
		if err != nil {
			return nil, err
		}
		m[abs] = types.Side(i)
	}
	return m, nil
}

func reloadSide(s *session.Session, sides map[string]types.Side, path string) {
	sd, ok := sides[path]
	if !ok {
		return
	}
	if err := s.Load(sd, path); err != nil {
		printError("%v\n", err)
		return
	}
	printInfo("\n[%s] %s changed\n", time.Now().Format("15:04:05"), filepath.Base(path))
	printSummary(s)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joshuapare/binkit/internal/config"
	"github.com/joshuapare/binkit/internal/logger"
	"github.com/joshuapare/binkit/pkg/session"
	"github.com/joshuapare/binkit/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string

	// cfg is loaded before every command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "binctl",
	Short: "Compare, inspect and patch binary files",
	Long: `binctl compares two binary files byte by byte. It lists differences,
dumps both files side by side in hex or binary, writes comparison reports,
and can patch bytes or copy rows from one file into the other.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.binkit/config.toml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func setup() error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	return logger.Init(logger.Options{
		Enabled: cfg.Log.Enabled,
		LogDir:  cfg.Log.Dir,
		Level:   logger.ParseLevel(cfg.Log.Level),
	})
}

// currentConfig returns the loaded config, or the defaults when a command
// runs without the root pre-run (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// colorEnabled reports whether styled output should be produced.
func colorEnabled(force bool) bool {
	if noColor {
		return false
	}
	return force || term.IsTerminal(int(os.Stdout.Fd()))
}

// openPair loads both files into a new session using the configured view.
func openPair(pathA, pathB string, width int) (*session.Session, error) {
	c := currentConfig()
	if width == 0 {
		width = c.View.Width
	}
	s, err := session.New(session.Options{
		Width:   width,
		Mode:    c.Mode(),
		Preview: c.Preview(),
	})
	if err != nil {
		return nil, err
	}

	printVerbose("Loading %s and %s...\n", pathA, pathB)
	if err := s.Load(types.SideA, pathA); err != nil {
		return nil, err
	}
	if err := s.Load(types.SideB, pathB); err != nil {
		return nil, err
	}
	return s, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

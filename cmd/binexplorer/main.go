package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/binkit/internal/config"
	"github.com/joshuapare/binkit/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	configPath := ""

	filteredArgs := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			debugMode = true
		case "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	logOpts := logger.Options{
		Enabled: cfg.Log.Enabled || debugMode,
		LogDir:  cfg.Log.Dir,
		Level:   logger.ParseLevel(cfg.Log.Level),
	}
	if debugMode {
		logOpts.Level = slog.LevelDebug
	}
	if err := logger.Init(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 || len(filteredArgs) > 2 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("binexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	pathA, pathB := filteredArgs[0], ""
	if len(filteredArgs) == 2 {
		pathB = filteredArgs[1]
	}
	logger.Info("starting binexplorer", "a", pathA, "b", pathB, "debug", debugMode)

	m, err := NewModel(pathA, pathB, cfg)
	if err != nil {
		logger.Error("load failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("binexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: binexplorer [options] <fileA> [fileB]\n")
	fmt.Fprintf(os.Stderr, "Try 'binexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("binexplorer - Interactive side-by-side binary file comparison")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  binexplorer [options] <fileA> [fileB]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Shows two files as rows of hex or binary bytes with differences")
	fmt.Println("  highlighted. Rows can be edited in place or copied between files.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move cursor")
	fmt.Println("    n / N       Next / previous difference")
	fmt.Println("    m, w        Toggle hex/binary, cycle row width")
	fmt.Println("    Tab         Switch active side")
	fmt.Println("    Space, e    Select row, edit selection")
	fmt.Println("    > / <       Copy selection A→B / B→A")
	fmt.Println("    r, s, x     Revert, save side, export report")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug      Enable debug logging to ~/.binkit/logs/")
	fmt.Println("      --config F   Read settings from F (default ~/.binkit/config.toml)")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'binctl' command instead.")
}

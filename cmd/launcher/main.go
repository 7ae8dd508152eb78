// Command launcher is a terminal application launcher built on the vlist
// engine: an application grid, clipboard history and recent files in one
// searchable, virtualized list.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath  string
	catalogPath string
	columns     int
	policy      string
	dumpMode    bool
	dumpWidth   int
	dumpHeight  int

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:          "launcher",
	Short:        "A virtualized terminal launcher",
	Long:         "launcher shows applications, clipboard history and recent files in one\nsearchable list. Without a terminal on stdout it prints the layout instead.",
	Version:      version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/vlist/launcher.yaml)")
	rootCmd.Flags().StringVar(&catalogPath, "items", "", "YAML catalog of apps, clips and files (default: generated demo catalog)")
	rootCmd.Flags().IntVar(&columns, "columns", 0, "Columns of the application grid")
	rootCmd.Flags().StringVar(&policy, "policy", "", "Selection policy after rebuilds (select-first, keep-selection, preserve-selection, select-none)")
	rootCmd.Flags().BoolVar(&dumpMode, "dump", false, "Print the layout and visible window instead of running interactively")
	rootCmd.Flags().IntVar(&dumpWidth, "width", 80, "Viewport width for --dump when the terminal size is unknown")
	rootCmd.Flags().IntVar(&dumpHeight, "height", 24, "Viewport height for --dump when the terminal size is unknown")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("columns") {
		cfg.Grid.Columns = columns
	}
	if cmd.Flags().Changed("policy") {
		cfg.Selection = policy
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
	}

	interactive := !dumpMode && term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := newLogger(cfg.Log, interactive, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	l := newLauncher(cfg, catalogPath, logger)
	if err := l.reload(); err != nil {
		return err
	}

	if !interactive {
		width, height := dumpWidth, dumpHeight
		if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
			if w, h, ok := terminalSize(int(os.Stdout.Fd())); ok {
				width, height = w, h
			}
		}
		v := l.newView()
		v.Resize(width, height)
		v.SetModel(l.model())
		defer v.Close()
		return dump(cmd.OutOrStdout(), v, defaultStyles())
	}

	p := tea.NewProgram(newUI(l), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("launcher: %w", err)
	}
	return nil
}

// newLogger builds the diagnostics logger. Interactive runs log only to the
// configured file; dump runs fall back to stderr.
func newLogger(cfg LogConfig, interactive bool, stderr io.Writer) (*slog.Logger, func(), error) {
	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	}
	if interactive {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	return slog.New(slog.NewTextHandler(stderr, opts)), func() {}, nil
}

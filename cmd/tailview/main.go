package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/modoterra/tailview/internal/buildinfo"
	"github.com/modoterra/tailview/pkg/core"
	"github.com/modoterra/tailview/pkg/extract"
	"github.com/modoterra/tailview/pkg/ingest"
	"github.com/modoterra/tailview/pkg/settings"
	tuimodel "github.com/modoterra/tailview/pkg/tui/model"
)

var (
	configPath string
	debugLog   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tailview",
	Short: "Tail any command's output as a filterable stream of timestamped entries",
	Long: "Tailview spawns a log-producing command (journalctl -f, kubectl logs -f, ...),\n" +
		"normalizes each line into a timestamped entry, and presents the stream in a\n" +
		"TUI with level, search, and time-range filtering.",
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/tailview/config.yaml)")
	rootCmd.Flags().StringVar(&debugLog, "debug", "", "append debug logs to this file")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(versionCmd)
}

// --- Root: TUI ---

func runTUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("tailview needs a terminal; pipe lines through `tailview parse` instead")
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := settings.Load(path)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		// a command given on the CLI overrides the configured one
		cfg.LogCommand = args[0]
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	collector := ingest.NewCollector(cfg.LogCommand, logger)
	defer collector.Stop()

	app := tuimodel.New(collector, cfg, path, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return settings.DefaultPath()
}

func newLogger() (*slog.Logger, func(), error) {
	if debugLog == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// --- parse ---

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Normalize stdin lines and print canonical timestamped entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		out := cmd.OutOrStdout()
		for scanner.Scan() {
			ts, content, ok := extract.Timestamp(scanner.Text())
			if !ok {
				ts = time.Now().Format(core.TimeFormat)
			}
			fmt.Fprintf(out, "%s\t%s\n", ts, content)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return nil
	},
}

// --- favorites ---

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorite commands",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := settings.Load(path)
		if err != nil {
			return err
		}
		if len(cfg.Favorites) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no favorites saved")
			return nil
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Name", "Command"})
		for _, f := range cfg.Favorites {
			tw.AppendRow(table.Row{f.Name, f.Command})
		}
		tw.Render()
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tailview %s (%s) built %s\n",
			buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}

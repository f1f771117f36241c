package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/mapsleads/internal/backend"
	"github.com/jask/mapsleads/internal/config"
)

// Commands that own the terminal or stdout set this annotation so logs go
// to the configured file instead of stderr.
const logToFileAnnotation = "log-to-file"

var (
	cfgPath  string
	logLevel string
	noColor  bool

	cfg     config.Config
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "mapsleads",
	Short:         "Browse and export contacts collected by the maps scraping backend",
	Long:          "mapsleads starts scraping jobs on the backend, browses the collected contacts page by page and downloads the CSV export.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Annotations:   map[string]string{logToFileAnnotation: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cmd, cfg.Log)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			_ = logFile.Close()
			logFile = nil
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBrowse(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $MAPSLEADS_CONFIG or XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored output")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (config.Config, error) {
	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}
	return config.Load()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogging(cmd *cobra.Command, lc config.LogConfig) error {
	level := lc.Level
	if logLevel != "" {
		level = logLevel
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var out io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[logToFileAnnotation] == "true" && lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, opts)))
	return nil
}

func newClient() *backend.Client {
	return backend.New(cfg.Backend, backend.WithLogger(slog.Default()))
}

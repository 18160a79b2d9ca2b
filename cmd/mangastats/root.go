package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kerbaras/mangastats/pkg/app"
	"github.com/kerbaras/mangastats/pkg/config"
	"github.com/kerbaras/mangastats/pkg/services"
	"github.com/spf13/cobra"
)

// build-time override (e.g. -ldflags "-X github.com/kerbaras/mangastats/cmd/mangastats.version=1.2.3")
var version = "dev"

var (
	flagConfig  string
	flagVerbose bool
	flagDebug   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "mangastats",
	Short:   "Storage statistics for your downloaded manga",
	Long:    "Inspect how much disk space downloaded chapters use, per manga, category and source, and how it changed over time",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// the TUI owns the terminal, so it logs to a file
		if cmd == cmd.Root() {
			return initFileLogging(cfg.LogFile)
		}
		initLogging(os.Stderr)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		controller := openController()
		defer controller.Close()

		a := app.NewApp(controller)
		if err := a.Run(ctx); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (info) logging")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging (overrides --verbose)")
}

func Execute() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogging(w io.Writer) {
	var level slog.Level
	switch {
	case flagDebug:
		level = slog.LevelDebug
	case flagVerbose:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging initialized", "level", level.String())
}

func initFileLogging(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	initLogging(f)
	return nil
}

func openController() *services.Controller {
	controller, err := services.NewController(cfg)
	cobra.CheckErr(err)
	return controller
}

func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Package cli assembles the terminal UI against a real repository:
// locate the jj workspace, load configuration, start the change
// watcher, and hand the model to bubbletea.
package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/config"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/jj"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/tui"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/watch"
)

func Execute() error {
	return NewRoot().Execute()
}

// runTUI carries everything that needs a live terminal and a real
// repository, so tests can swap it out.
var runTUI = func(ctx context.Context, cfg config.Config) error {
	if _, err := jj.CheckVersion(ctx, nil); err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	engine, err := jj.Open(ctx, cwd, nil)
	if err != nil {
		return err
	}

	var external <-chan struct{}
	if cfg.Watch {
		w, err := watch.New(engine.Root())
		if err != nil {
			slog.Warn("reload on external changes disabled", "error", err)
		} else {
			wctx, cancel := context.WithCancel(ctx)
			defer cancel()
			defer w.Close()
			go w.Run(wctx)
			external = w.Events()
		}
	}

	p := tea.NewProgram(tui.New(engine, cfg, external), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func NewRoot() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:          "zakalwe",
		Short:        "Terminal UI for Jujutsu repositories",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgErr := config.Load()
			closeLog := setupLogging(cfg, debug)
			defer closeLog()
			if cfgErr != nil {
				slog.Warn("malformed config, using defaults", "error", cfgErr)
			}
			if _, err := config.EnsureDefault(); err != nil {
				slog.Warn("cannot write default config", "error", err)
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	root.AddCommand(VersionCmd(), PresetsCmd(), RevsetsCmd())
	return root
}

// setupLogging routes slog to a file. The terminal belongs to the UI,
// so when no file can be opened stderr only carries errors.
func setupLogging(cfg config.Config, debug bool) func() {
	path := cfg.LogFile
	if path == "" {
		if dir, err := config.Dir(); err == nil {
			path = filepath.Join(dir, "zakalwe.log")
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(cfg, debug)})
				slog.SetDefault(slog.New(h))
				return func() { f.Close() }
			}
		}
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
	slog.SetDefault(slog.New(h))
	return func() {}
}

func logLevel(cfg config.Config, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

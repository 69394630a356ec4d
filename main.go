// clammy is a live-themed terminal status bar for Hyprland desktops.
//
// It renders workspaces, the focused window title, and a tray of system
// widgets (volume, battery, system load, clock) into a single bar line,
// restyling everything in place when the config file or palette overlay
// is edited.
//
// Usage:
//
//	clammy [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/clammy/config.toml)
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/clammy/pkg/config"
	"gitlab.com/tinyland/lab/clammy/pkg/engine"
	"gitlab.com/tinyland/lab/clammy/pkg/pollers"
	"gitlab.com/tinyland/lab/clammy/pkg/render"
	"gitlab.com/tinyland/lab/clammy/pkg/theme"
	"gitlab.com/tinyland/lab/clammy/pkg/watch"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("clammy %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	logger, closeLog, err := setupLogging(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(logger, *configPath); err != nil {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

// setupLogging writes to a log file under the cache directory, and to
// stderr as well when stderr is not the terminal the bar is drawn on.
func setupLogging(verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, err
		}
		dir = filepath.Join(home, ".cache")
	}
	dir = filepath.Join(dir, "clammy")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(filepath.Join(dir, "clammy.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = logFile
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		w = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, func() { logFile.Close() }, nil
}

func run(logger *slog.Logger, configPath string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	path := configPath
	if path == "" {
		path = config.Path()
	}
	if err := config.EnsureDefault(path); err != nil {
		logger.Warn("could not write default config", "path", path, "err", err)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		logger.Warn("config unusable at startup, using defaults", "path", path, "err", err)
		cfg = config.Default()
	}
	paletteFile := cfg.Watch.PaletteFile
	if paletteFile != "" {
		if err := cfg.ApplyPaletteFile(paletteFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("palette overlay skipped", "path", paletteFile, "err", err)
		}
	}

	snap, err := cfg.Snapshot()
	if err != nil {
		logger.Warn("config invalid at startup, using defaults", "err", err)
		snap, err = config.Default().Snapshot()
		if err != nil {
			return fmt.Errorf("default config failed to resolve: %w", err)
		}
	}

	store := theme.NewStore(snap)
	logger.Info("theme applied", "palette", snap.Theme.Name)

	surface := render.New()
	rec := engine.New(logger, store, surface)

	watcher := watch.New(watch.Options{
		Log:         logger,
		Store:       store,
		Enqueue:     rec.Enqueue,
		ConfigPath:  path,
		PaletteFile: paletteFile,
		Debounce:    cfg.DebounceWindow(),
	})
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Warn("config watching disabled", "err", err)
		}
	}()

	runner := pollers.NewRunner(logger, rec.Enqueue)
	wantWorkspaces := false
	wantWindowTitle := false
	for _, w := range snap.Widgets {
		switch w.Kind {
		case theme.WidgetClock:
			runner.Add(pollers.NewClock(cfg.Widgets.Clock.Interval.Duration))
		case theme.WidgetBattery:
			runner.Add(pollers.NewBattery(cfg.Widgets.Battery.Interval.Duration))
		case theme.WidgetVolume:
			runner.Add(pollers.NewVolume(cfg.Widgets.Volume.Interval.Duration, cfg.Widgets.Volume.Sink))
		case theme.WidgetSysMetrics:
			runner.Add(pollers.NewSysMetrics(cfg.Widgets.SysMetrics.Interval.Duration))
		case theme.WidgetWorkspaces:
			wantWorkspaces = true
		case theme.WidgetWindowTitle:
			wantWindowTitle = true
		}
	}
	if wantWorkspaces || wantWindowTitle {
		runner.AddStreamer(pollers.NewHyprland(wantWorkspaces, wantWindowTitle))
	}

	go rec.Run(ctx)
	runner.Start(ctx)

	err = surface.Run(ctx)
	cancel()
	runner.Wait()
	if err != nil {
		return fmt.Errorf("render surface: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

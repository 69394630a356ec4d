// Package watch observes the configuration and palette-sync files and drives
// the hot-reload pipeline: debounce, parse, validate, swap. A failed reload
// keeps the active snapshot and surfaces a diagnostic; the bar keeps
// rendering the last-good theme through an edit mistake.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gitlab.com/tinyland/lab/clammy/pkg/config"
	"gitlab.com/tinyland/lab/clammy/pkg/engine"
	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// Options configures a Watcher.
type Options struct {
	Log     *slog.Logger
	Store   *theme.Store
	Enqueue func(engine.Event)

	// ConfigPath is the main configuration file.
	ConfigPath string

	// PaletteFile is the optional externally generated palette overlay
	// (e.g. Matugen output), consumed through the same parse/validate/swap
	// path.
	PaletteFile string

	// Debounce is the quiet window coalescing bursts of change
	// notifications into one reload attempt. Editors frequently emit
	// several write events per save.
	Debounce time.Duration
}

// Watcher drives the reload pipeline. Run owns all of its state; only the
// constructor and Run touch it.
type Watcher struct {
	log         *slog.Logger
	store       *theme.Store
	enqueue     func(engine.Event)
	configPath  string
	paletteFile string
	debounce    time.Duration

	lastSum  [sha256.Size]byte
	sumKnown bool
}

// New builds a watcher and primes its content hash from the files as they
// are now, so a save that does not change content after startup produces no
// redundant swap.
func New(opts Options) *Watcher {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		log:         log,
		store:       opts.Store,
		enqueue:     opts.Enqueue,
		configPath:  opts.ConfigPath,
		paletteFile: opts.PaletteFile,
		debounce:    opts.Debounce,
	}
	if w.debounce <= 0 {
		w.debounce = 200 * time.Millisecond
	}
	if sum, ok := w.contentSum(); ok {
		w.lastSum, w.sumKnown = sum, true
	}
	return w
}

// Run watches until ctx is cancelled. The debounce timer is a fixed window:
// the first relevant notification arms it, further notifications within the
// window coalesce, and the reload fires once when it expires. Only shutdown
// cancels a pending window.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer fw.Close()

	// Watch parent directories, not the files: editors replace files on
	// save, which would drop an inode-based watch.
	watched := 0
	for _, dir := range w.watchDirs() {
		if err := fw.Add(dir); err != nil {
			w.log.Warn("cannot watch directory", "dir", dir, "err", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("config watch: no watchable directories for %s", w.configPath)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if fire == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
				w.log.Debug("change detected, debouncing", "path", ev.Name, "window", w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", "err", err)
		case <-fire:
			timer, fire = nil, nil
			w.Reload()
		}
	}
}

// relevant filters notifications down to the files we reload from.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
		return false
	}
	base := filepath.Base(ev.Name)
	if base == filepath.Base(w.configPath) {
		return true
	}
	return w.paletteFile != "" && base == filepath.Base(w.paletteFile)
}

// Reload runs one parse/validate/swap attempt. Identical content is skipped,
// so a burst of notifications for the same save (or the same file written
// twice) produces at most one swap. On any failure the previous snapshot
// stays active and a diagnostic event is enqueued.
func (w *Watcher) Reload() {
	sum, ok := w.contentSum()
	if ok && w.sumKnown && sum == w.lastSum {
		w.log.Debug("content unchanged, skipping reload")
		return
	}

	cfg, err := config.LoadFromFile(w.configPath)
	if err != nil {
		w.fail(err)
		return
	}
	if w.paletteFile != "" {
		if err := cfg.ApplyPaletteFile(w.paletteFile); err != nil {
			// A missing overlay is fine; a broken one is a diagnostic but
			// the main config still applies.
			if !errors.Is(err, os.ErrNotExist) {
				w.log.Warn("palette overlay skipped", "path", w.paletteFile, "err", err)
			}
		}
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		w.fail(err)
		return
	}

	w.lastSum, w.sumKnown = sum, ok
	gen := w.store.Swap(snap)
	w.log.Info("configuration applied", "generation", gen, "theme", snap.Theme.Name)
	w.enqueue(engine.SnapshotApplied{Generation: gen})
}

func (w *Watcher) fail(err error) {
	// Keep the previous snapshot; do not record the hash so a later save of
	// corrected-but-identical content is still retried.
	w.sumKnown = false
	w.log.Warn("config reload failed, keeping active theme", "err", err)
	w.enqueue(engine.DiagnosticEvent{Source: "config", Err: err})
}

// contentSum hashes the current content of all reload sources, with a
// separator so file boundaries cannot alias.
func (w *Watcher) contentSum() ([sha256.Size]byte, bool) {
	h := sha256.New()
	any := false
	for _, p := range []string{w.configPath, w.paletteFile} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			h.Write(data)
			any = true
		}
		h.Write([]byte{0})
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum, any
}

func (w *Watcher) watchDirs() []string {
	dirs := []string{filepath.Dir(w.configPath)}
	if w.paletteFile != "" {
		pd := filepath.Dir(w.paletteFile)
		if pd != dirs[0] {
			dirs = append(dirs, pd)
		}
	}
	return dirs
}

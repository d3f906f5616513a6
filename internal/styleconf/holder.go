package styleconf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"chatblack/internal/palette"
)

// reloadDebounce coalesces the burst of filesystem events editors and atomic
// rename writes produce into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Snapshot is one fully built style state: the validated record, the merged
// palette, and the resolved plugins. Snapshots are immutable; a reload
// produces a new one and older ones stay valid for whoever still holds them.
// Callers must treat the contained maps and slices as read-only.
type Snapshot struct {
	Config   Config
	Palette  palette.Palette
	Plugins  []Plugin
	LoadedAt time.Time
}

// CSS renders the snapshot as a stylesheet: the palette variables block
// followed by each plugin's rules in config order.
func (s Snapshot) CSS() string {
	var b strings.Builder
	b.WriteString(palette.CSS(s.Palette, palette.CSSOptions{}))
	for _, p := range s.Plugins {
		for _, rule := range p.Rules(s.Palette) {
			b.WriteString("\n")
			b.WriteString(rule.Selector)
			b.WriteString(" {\n")
			for _, line := range strings.Split(strings.TrimSpace(rule.Body), "\n") {
				b.WriteString("  ")
				b.WriteString(strings.TrimSpace(line))
				b.WriteString("\n")
			}
			b.WriteString("}\n")
		}
	}
	return b.String()
}

// Holder guards the current snapshot and rebuilds it from the config file on
// demand or on file change. Reads never block on a reload in progress beyond
// the swap itself.
type Holder struct {
	path     string
	registry *Registry
	logger   *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewHolder loads the config at path and builds the initial snapshot. A nil
// registry is treated as empty, which suits the shipped record (no plugins).
func NewHolder(path string, registry *Registry, logger *zap.Logger) (*Holder, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	h := &Holder{
		path:     path,
		registry: registry,
		logger:   logger,
	}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Path returns the config file path the holder reads from.
func (h *Holder) Path() string {
	return h.path
}

// Current returns the active snapshot.
func (h *Holder) Current() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// Reload loads, validates, and builds a fresh snapshot, then swaps it in.
// On any failure the previous snapshot stays active and the error is
// returned, so a broken edit never takes the styles down.
func (h *Holder) Reload() error {
	snap, err := build(h.path, h.registry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()

	h.logger.Info("style config loaded",
		zap.String("path", h.path),
		zap.Int("content_patterns", len(snap.Config.Content)),
		zap.Int("colors", len(snap.Palette)),
		zap.Int("plugins", len(snap.Plugins)),
	)
	return nil
}

// Watch blocks watching the config file and reloading on change until ctx is
// done. It watches the parent directory rather than the file itself: atomic
// saves replace the file by rename, which would silently detach a file-level
// watch. A failed reload is logged and the previous snapshot stays active.
func (h *Holder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	h.logger.Info("watching style config", zap.String("path", h.path))

	target := filepath.Base(h.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("style config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := h.Reload(); err != nil {
					h.logger.Error("style config reload failed, keeping previous snapshot", zap.Error(err))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error("style config watcher error", zap.Error(err))
		}
	}
}

// build runs the full load pipeline for one snapshot.
func build(path string, registry *Registry) (Snapshot, error) {
	cfg, err := Load(path)
	if err != nil {
		return Snapshot{}, err
	}
	if err := Validate(cfg); err != nil {
		return Snapshot{}, fmt.Errorf("validate %s: %w", path, err)
	}
	plugins, err := registry.Resolve(cfg.Plugins)
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolve plugins: %w", err)
	}
	return Snapshot{
		Config:   cfg,
		Palette:  palette.Merge(palette.Default(), cfg.Theme.Extend.Colors),
		Plugins:  plugins,
		LoadedAt: time.Now().UTC(),
	}, nil
}

package refdata

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a provider's override file whenever it changes on disk.
// The parent directory is watched rather than the file itself so that
// editors which replace the file via rename still trigger a reload.
type Watcher struct {
	provider *Provider
	path     string
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewWatcher prepares a watcher for the override file at path. The file does
// not need to exist yet; a later create triggers the first reload.
func NewWatcher(provider *Provider, path string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		provider: provider,
		path:     path,
		fsw:      fsw,
		logger:   logger,
	}, nil
}

// Start begins delivering reloads until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	go w.run(ctx)
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := w.provider.ApplyOverride(w.path); err != nil {
				w.logger.Warn("reference data reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("reference data reloaded", "path", w.path)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("reference data watcher error", "error", err)
		}
	}
}

// Stop ends the watch and releases the filesystem watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.running {
		w.running = false
		w.cancel()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

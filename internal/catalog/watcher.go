package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"jewelry/internal/domain"
)

const reloadDelay = 200 * time.Millisecond

// ReloadHandler receives the freshly parsed catalog.
type ReloadHandler func(items []domain.CatalogItem)

// Watcher reloads the manifest whenever it changes on disk. Bursts of
// editor writes collapse into a single reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload ReloadHandler
	log      *slog.Logger
	debounce func(f func())
}

// Watch starts watching the manifest at path.
func Watch(path string, onReload ReloadHandler, logger *slog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file via rename.
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		watcher:  fw,
		path:     absPath,
		onReload: onReload,
		log:      logger.With("component", "catalog-watcher"),
		debounce: debounce.New(reloadDelay),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != w.path {
				continue
			}
			w.debounce(w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	items, err := LoadManifest(w.path)
	if err != nil {
		// Keep serving the previous catalog until the file is valid again.
		w.log.Warn("manifest reload failed", "path", w.path, "err", err)
		return
	}
	w.log.Info("manifest reloaded", "path", w.path, "items", len(items))
	if w.onReload != nil {
		w.onReload(items)
	}
}

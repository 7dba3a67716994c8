package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/poiesic/datascout/core"
)

// ReloadFunc is invoked after the watched tree settles following a change.
// The engine snapshot is rebuilt wholesale; the watcher never patches an
// index incrementally.
type ReloadFunc func()

// Watcher monitors the metadata directory tree and signals when the catalog
// should be reloaded. Events are debounced so a burst of file writes (for
// example an rsync of the whole tree) triggers a single reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dataDir  string
	debounce time.Duration
	onReload ReloadFunc
	logger   *slog.Logger

	timerMu  sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the tree must stay quiet before a reload fires.
// Default is 500ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets a custom logger.
// Default is slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher over the loader directory layout rooted at
// dataDir. onReload runs on the watcher's event goroutine.
func NewWatcher(dataDir string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if dataDir == "" {
		return nil, ErrDataDirRequired
	}
	if onReload == nil {
		return nil, ErrReloadCallbackRequired
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		dataDir:  dataDir,
		debounce: 500 * time.Millisecond,
		onReload: onReload,
		logger:   slog.Default().With("component", "loader-watcher"),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching the metadata directories and launches the event loop.
func (w *Watcher) Start() error {
	watched := 0
	for _, sourceType := range []core.SourceType{core.SourceTypeAVS, core.SourceTypeDLVS} {
		for _, sub := range []string{metadataDir, descriptionDir} {
			dir := filepath.Join(w.dataDir, sourceType.String(), sub)
			if _, err := os.Stat(dir); err != nil {
				continue // source tree may only carry one of the two kinds
			}
			if err := w.watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			watched++
		}
	}
	if watched == 0 {
		return fmt.Errorf("no metadata directories found under %s", w.dataDir)
	}

	go w.eventLoop()

	w.logger.Info("watching metadata tree", "dir", w.dataDir, "directories", watched)
	return nil
}

// Stop stops the watcher and cancels any pending reload.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("metadata change", "path", event.Name, "op", event.Op.String())
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer.
func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.onReload()
	})
}

// Package watch re-validates corpus documents as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounce = 500 * time.Millisecond
	sweepInterval   = 100 * time.Millisecond
)

// CheckFunc receives the corpus-relative paths of documents that settled past
// the debounce window. Implementations typically re-run the link check.
type CheckFunc func(ctx context.Context, paths []string)

// Config controls the corpus watcher.
type Config struct {
	RootDir  string
	Debounce time.Duration
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	FilesChanged  int
	FilesDeleted  int
	ChecksRun     int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher monitors the corpus root for markdown changes and triggers a
// debounced re-check of the affected documents.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	rootDir     string
	check       CheckFunc
	logger      interfaces.Logger
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// NewWatcher creates a corpus watcher. The check callback runs on the watcher
// goroutine once changed files settle.
func NewWatcher(cfg Config, check CheckFunc, logger interfaces.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		watcher:     fsWatcher,
		rootDir:     cfg.RootDir,
		check:       check,
		logger:      logger,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching the corpus root and its subdirectories. This method is
// non-blocking; the event loop runs in a goroutine until Stop or context
// cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.rootDir); err != nil {
		w.logger.Warn("watch.start.partial", "root", w.rootDir, "error", err)
	} else {
		w.logger.Info("watch.start", "root", w.rootDir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("watch.close.failed", "error", err)
	}
	w.logger.Info("watch.stopped")
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch.context_cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch.event.error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-sweep.C:
			w.processSettled(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories need their own watch to keep the tree covered.
	if event.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := w.watcher.Add(event.Name); err == nil {
				w.logger.Debug("watch.dir.added", "dir", event.Name)
			}
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".md") {
		return
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.mu.Lock()
		w.stats.FilesChanged++
		w.stats.LastEventTime = time.Now()
		w.stats.LastEventPath = event.Name
		w.debounceMap[event.Name] = time.Now()
		w.mu.Unlock()
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.mu.Lock()
		w.stats.FilesDeleted++
		w.stats.LastEventTime = time.Now()
		w.stats.LastEventPath = event.Name
		delete(w.debounceMap, event.Name)
		w.mu.Unlock()
	}
}

func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	settled := make([]string, 0)
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	if len(settled) == 0 || w.check == nil {
		return
	}

	paths := make([]string, 0, len(settled))
	for _, abs := range settled {
		rel, err := filepath.Rel(w.rootDir, abs)
		if err != nil {
			rel = abs
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)

	w.mu.Lock()
	w.stats.ChecksRun++
	w.mu.Unlock()

	w.logger.Info("watch.check.triggered", "files", len(paths))
	w.check(ctx, paths)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

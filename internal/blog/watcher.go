package blog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for edits to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Library when markdown files under a directory change.
type Watcher struct {
	dir      string
	reload   func() error
	onReload func(error)
	debounce time.Duration

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
	trigger  chan struct{}
}

// NewWatcher watches dir recursively and calls reload after changes.
// onReload, if non-nil, observes the outcome of every reload.
func NewWatcher(dir string, reload func() error, onReload func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}
	return &Watcher{
		dir:      abs,
		reload:   reload,
		onReload: onReload,
		debounce: DefaultDebounce,
		watcher:  w,
		stopChan: make(chan struct{}),
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Start registers every directory under the root and begins watching.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := filepath.WalkDir(w.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	slog.Info("Starting blog watcher", logfields.Path(w.dir))
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
					w.triggerReload()
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				slog.Debug("Blog content change detected", logfields.Path(event.Name))
				w.triggerReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Blog watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.trigger:
			stop()
			timer = time.AfterFunc(w.debounce, w.performReload)
		}
	}
}

func (w *Watcher) triggerReload() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) performReload() {
	err := w.reload()
	if err != nil {
		slog.Error("Failed to reload blog", logfields.Error(err))
	} else {
		slog.Info("Blog reloaded", logfields.Path(w.dir))
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

// Package watch turns edits of a file on disk into buffer updates for a
// debounced preview renderer.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Updater receives the full file contents after every change.
type Updater interface {
	Keystroke(text string)
}

// Stats counts watcher activity.
type Stats struct {
	Events  int
	Updates int
	Errors  int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher follows one file. The parent directory is watched so editors that
// save through a rename are still seen.
type Watcher struct {
	path    string
	target  Updater
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	last  string
	stats Stats
}

// New creates a watcher for path. The file must exist.
func New(path string, target Updater, opts ...Option) (*Watcher, error) {
	if target == nil {
		return nil, errors.New("watch: updater is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		path:    abs,
		target:  target,
		logger:  zap.NewNop(),
		watcher: fw,
		last:    string(data),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Contents returns the file contents seen last.
func (w *Watcher) Contents() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run forwards changes until ctx is cancelled and then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.logger.Debug("watched file moved away", zap.String("path", w.path))
		}
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		w.logger.Warn("read watched file", zap.String("path", w.path), zap.Error(err))
		return
	}
	text := string(data)

	w.mu.Lock()
	if text == w.last {
		w.mu.Unlock()
		return
	}
	w.last = text
	w.stats.Updates++
	w.mu.Unlock()

	w.logger.Debug("file changed", zap.String("path", w.path), zap.Int("bytes", len(data)))
	w.target.Keystroke(text)
}

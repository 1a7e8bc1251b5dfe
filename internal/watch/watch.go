// Package watch re-runs documentation updates when a source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ChangeFunc is called after the watched file changed.
// Calls never overlap; they run on the goroutine executing Run.
type ChangeFunc func(ctx context.Context) error

// Watcher watches one file for changes and triggers a debounced callback
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	onChange       ChangeFunc
	debouncePeriod time.Duration

	mu            sync.Mutex
	debounceTimer *time.Timer
	fire          chan struct{}
}

// New creates a watcher for path. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
func New(path string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &Watcher{
		path:           abs,
		watcher:        watcher,
		onChange:       onChange,
		debouncePeriod: debounce,
		fire:           make(chan struct{}, 1),
	}, nil
}

// Run processes file events until ctx is cancelled or the watcher is closed.
// Callback errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("source change detected")
			w.schedule()

		case <-w.fire:
			if err := w.onChange(ctx); err != nil {
				log.Error().Err(err).Str("file", w.path).Msg("update after change failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// schedule debounces rapid changes into a single callback
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Package watch re-runs analysis when a source file changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/utils"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 65 * time.Millisecond

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
	// OnChange runs on a timer goroutine once writes to Path settle.
	OnChange func(path string)
}

// Watcher monitors a single file through its parent directory, so editors
// that replace the file by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	base      string
	debounce  time.Duration
	onChange  func(path string)
	debouncer utils.Debouncer
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a watcher for cfg.Path. It does not watch until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watch: empty path")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("watch: nil OnChange callback")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		base:      filepath.Base(cfg.Path),
		debounce:  cfg.Debounce,
		onChange:  cfg.OnChange,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	logger.DebugTagf("watch", "Watching '%s' (debounce %v)", w.path, w.debounce)
	go w.loop()
	return nil
}

// Stop terminates the watcher, drops any pending callback and releases
// resources. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.debouncer.Stop()
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			logger.DebugTagf("watch", "Event %s on '%s'", event.Op, event.Name)
			w.debouncer.Debounce(w.debounce, w.fire)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("watch: %v", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	w.onChange(w.path)
}

// isRelevantEvent reports whether the event changes the watched file's content.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Base(event.Name) == w.base
}

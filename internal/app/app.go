// internal/app/app.go
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidelex/internal/event"
	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/statusbar"
	"github.com/bethropolis/tidelex/internal/theme"
	"github.com/bethropolis/tidelex/internal/tui"
	"github.com/bethropolis/tidelex/internal/watch"
)

// Options configures the interactive viewer.
type Options struct {
	Path     string
	Watch    bool          // Re-analyze when the file changes
	Debounce time.Duration // Watch quiet period; zero uses watch.DefaultDebounce
	Screen   tcell.Screen  // nil opens the terminal
	Themes   []*theme.Theme
	// MessageTimeout is how long status messages stay; zero uses the
	// status bar default.
	MessageTimeout time.Duration
}

// App runs the viewer over one analyzed file, optionally live-reloading it.
type App struct {
	analyzer     *Analyzer
	opts         Options
	tuiManager   *tui.TUI
	viewer       *tui.Viewer
	watcher      *watch.Watcher
	eventManager *event.Manager

	mu      sync.Mutex // guards current against overlapping reloads
	current *Result
}

// NewApp analyzes opts.Path and prepares the screen.
func NewApp(analyzer *Analyzer, activeTheme *theme.Theme, opts Options) (*App, error) {
	if activeTheme == nil {
		activeTheme = theme.Builtin(false)
	}
	result, err := analyzer.AnalyzeFile(opts.Path)
	if err != nil {
		return nil, err
	}

	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme.GetStyle("Default"))
	} else {
		tuiManager, err = tui.New(activeTheme.GetStyle("Default"))
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	sbConfig := statusbar.DefaultConfig()
	if opts.MessageTimeout > 0 {
		sbConfig.MessageTimeout = opts.MessageTimeout
	}
	viewer := tui.NewViewer(tuiManager, activeTheme, statusbar.New(sbConfig))
	viewer.SetThemes(opts.Themes)
	viewer.SetDocument(result.Document())

	a := &App{
		analyzer:     analyzer,
		opts:         opts,
		tuiManager:   tuiManager,
		viewer:       viewer,
		eventManager: event.NewManager(),
		current:      result,
	}
	a.eventManager.Subscribe(event.TypeDocumentAnalyzed, a.handleAnalyzedForStatus)
	a.eventManager.Subscribe(event.TypeAnalysisFailed, a.handleFailedForStatus)

	if opts.Watch {
		a.watcher, err = watch.New(watch.Config{
			Path:     opts.Path,
			Debounce: opts.Debounce,
			OnChange: a.reload,
		})
		if err != nil {
			tuiManager.Close()
			return nil, err
		}
	}
	return a, nil
}

// Events returns the app's event bus. Handlers run on the goroutine that
// produced the event: the caller of Run, or the watcher's timer.
func (a *App) Events() *event.Manager {
	return a.eventManager
}

// Viewer returns the app's viewer.
func (a *App) Viewer() *tui.Viewer {
	return a.viewer
}

// Run shows the viewer until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			return err
		}
		defer func() {
			if err := a.watcher.Stop(); err != nil {
				logger.Warnf("App: stopping watcher: %v", err)
			}
		}()
		a.viewer.StatusBar().SetTemporaryMessage("Watching %s - q quit, n/N next/prev diagnostic", a.opts.Path)
	}

	logger.InfoTagf("app", "Viewing '%s'", a.opts.Path)
	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.mu.Lock()
	initial := a.current
	a.mu.Unlock()
	a.dispatchAnalyzed(initial, false, 0, 0)
	a.viewer.Run()
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	return nil
}

// reload re-analyzes the watched file and pushes the result to the viewer.
func (a *App) reload(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.analyzer.AnalyzeFile(path)
	if err != nil {
		logger.Warnf("App: reload of '%s' failed: %v", path, err)
		a.eventManager.Dispatch(event.TypeAnalysisFailed, event.AnalysisFailedData{Path: path, Err: err})
		a.tuiManager.Interrupt(nil)
		return
	}
	added, removed := LineChanges(a.current.Text, result.Text)
	a.current = result
	logger.DebugTagf("watch", "App: reloaded '%s' (+%d -%d lines, cached=%t)", path, added, removed, result.Cached)
	a.viewer.SetDocument(result.Document())
	a.dispatchAnalyzed(result, true, added, removed)
}

func (a *App) dispatchAnalyzed(result *Result, reload bool, added, removed int) {
	a.eventManager.Dispatch(event.TypeDocumentAnalyzed, event.DocumentAnalyzedData{
		Path:     result.Path,
		Language: result.Language.Name,
		Errors:   len(result.Errors),
		Blocking: result.Blocking(),
		Reload:   reload,
		Added:    added,
		Removed:  removed,
		Cached:   result.Cached,
	})
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleAnalyzedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentAnalyzedData); ok && data.Reload {
		if data.Cached || data.Added+data.Removed == 0 {
			a.viewer.StatusBar().SetTemporaryMessage("Reloaded %s (no changes, %d diagnostics)", data.Path, data.Errors)
		} else {
			a.viewer.StatusBar().SetTemporaryMessage("Reloaded %s (+%d -%d lines, %d diagnostics)",
				data.Path, data.Added, data.Removed, data.Errors)
		}
		a.tuiManager.Interrupt(nil)
	}
	return false
}

func (a *App) handleFailedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.AnalysisFailedData); ok {
		a.viewer.StatusBar().SetTemporaryMessage("Reload failed: %v", data.Err)
	}
	return false
}

// internal/tui/viewer.go
package tui

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/statusbar"
	"github.com/bethropolis/tidelex/internal/theme"
	"github.com/bethropolis/tidelex/internal/types"
)

// Viewer is a read-only, scrollable view of a highlighted document.
// SetDocument may be called from other goroutines while Run is active.
type Viewer struct {
	tui       *TUI
	statusBar *statusbar.StatusBar
	theme     *theme.Theme

	mu     sync.Mutex
	doc    *Document
	vp     Viewport
	themes []*theme.Theme // cycled with 't'
}

// NewViewer creates a viewer drawing on t with activeTheme.
func NewViewer(t *TUI, activeTheme *theme.Theme, sb *statusbar.StatusBar) *Viewer {
	if activeTheme == nil {
		activeTheme = theme.Builtin(false)
	}
	if sb == nil {
		sb = statusbar.New(statusbar.DefaultConfig())
	}
	return &Viewer{tui: t, theme: activeTheme, statusBar: sb, doc: &Document{}}
}

// SetThemes sets the themes the 't' key cycles through.
func (v *Viewer) SetThemes(themes []*theme.Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.themes = themes
}

// Theme returns the active theme.
func (v *Viewer) Theme() *theme.Theme {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.theme
}

// StatusBar exposes the viewer's status bar for temporary messages.
func (v *Viewer) StatusBar() *statusbar.StatusBar {
	return v.statusBar
}

// SetDocument replaces the displayed document, keeping the scroll position
// where it still fits, and wakes the event loop to redraw.
func (v *Viewer) SetDocument(doc *Document) {
	v.mu.Lock()
	v.doc = doc
	v.clampLocked()
	v.mu.Unlock()
	v.tui.Interrupt(nil)
}

// Document returns the displayed document.
func (v *Viewer) Document() *Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

// Viewport returns the current scroll state.
func (v *Viewer) Viewport() Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vp
}

// Run draws and handles events until the user quits or the screen closes.
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.tui.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.tui.GetScreen().Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				logger.Debugf("Viewer: quit requested")
				return
			}
		case *tcell.EventInterrupt:
		}
		v.Draw()
	}
}

// HandleKey applies a key press and reports whether it asks to quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, height := v.tui.Size()
	page := height - 2
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.vp.Cursor--
	case tcell.KeyDown:
		v.vp.Cursor++
	case tcell.KeyPgUp:
		v.vp.Cursor -= page
		v.vp.Top -= page
	case tcell.KeyPgDn:
		v.vp.Cursor += page
		v.vp.Top += page
	case tcell.KeyHome:
		v.vp.Cursor = 0
	case tcell.KeyEnd:
		v.vp.Cursor = len(v.doc.Lines) - 1
	case tcell.KeyLeft:
		v.vp.Left -= tabWidth
	case tcell.KeyRight:
		v.vp.Left += tabWidth
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'j':
			v.vp.Cursor++
		case 'k':
			v.vp.Cursor--
		case 'n':
			v.jumpDiagnosticLocked(1)
		case 'N':
			v.jumpDiagnosticLocked(-1)
		case 't':
			v.nextThemeLocked()
		}
	}
	v.clampLocked()
	return false
}

// jumpDiagnosticLocked moves the cursor to the next (dir > 0) or previous
// line carrying a diagnostic. Diagnostics are sorted by line.
func (v *Viewer) jumpDiagnosticLocked(dir int) {
	errs := v.doc.Errors
	if len(errs) == 0 {
		return
	}
	cur := v.vp.Cursor + 1 // 1-based
	if dir > 0 {
		i := sort.Search(len(errs), func(i int) bool { return errs[i].Line > cur })
		if i < len(errs) {
			v.vp.Cursor = errs[i].Line - 1
		}
		return
	}
	i := sort.Search(len(errs), func(i int) bool { return errs[i].Line >= cur })
	if i > 0 {
		v.vp.Cursor = errs[i-1].Line - 1
	}
}

func (v *Viewer) nextThemeLocked() {
	if len(v.themes) == 0 {
		return
	}
	next := 0
	for i, t := range v.themes {
		if t == v.theme {
			next = (i + 1) % len(v.themes)
			break
		}
	}
	v.theme = v.themes[next]
	v.statusBar.SetTemporaryMessage("Theme: %s", v.theme.Name)
}

// clampLocked keeps the cursor inside the document and the viewport around
// the cursor.
func (v *Viewer) clampLocked() {
	_, height := v.tui.Size()
	viewHeight := height - 1
	if viewHeight < 1 {
		viewHeight = 1
	}
	last := len(v.doc.Lines) - 1
	if last < 0 {
		last = 0
	}

	v.vp.Cursor = clamp(v.vp.Cursor, 0, last)
	maxTop := last - viewHeight + 1
	if maxTop < 0 {
		maxTop = 0
	}
	v.vp.Top = clamp(v.vp.Top, 0, maxTop)
	if v.vp.Cursor < v.vp.Top {
		v.vp.Top = v.vp.Cursor
	}
	if v.vp.Cursor >= v.vp.Top+viewHeight {
		v.vp.Top = v.vp.Cursor - viewHeight + 1
	}
	if v.vp.Left < 0 {
		v.vp.Left = 0
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Draw redraws the document and the status bar.
func (v *Viewer) Draw() {
	v.mu.Lock()
	doc, vp, activeTheme := v.doc, v.vp, v.theme
	v.mu.Unlock()

	v.statusBar.SetFileInfo(doc.Path, doc.Language)
	v.statusBar.SetDiagnostics(doc.Errors)
	v.statusBar.SetCursorInfo(vp.Cursor, len(doc.Lines), lineDiagnostic(doc.Errors, vp.Cursor))

	screen := v.tui.GetScreen()
	width, height := v.tui.Size()
	v.tui.Clear()
	DrawDocument(screen, doc, vp, activeTheme)
	v.statusBar.Draw(screen, width, height, activeTheme)
	screen.HideCursor()
	v.tui.Show()
}

// lineDiagnostic formats the first diagnostic on 0-based line, if any.
func lineDiagnostic(errs []types.SyntaxError, line int) string {
	for _, e := range errs {
		if e.Line == line+1 {
			return e.Error()
		}
	}
	return ""
}

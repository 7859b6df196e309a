// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidelex/internal/checker"
	"github.com/bethropolis/tidelex/internal/theme"
	"github.com/bethropolis/tidelex/internal/types"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: 4 * time.Second}
}

// StatusBar is the bottom line of the viewer: file, language, position and
// diagnostic counts, or a temporary message.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath  string
	language  string
	line      int // 0-based cursor line
	lineCount int
	blocking  int
	advisory  int
	lineDiag  string // diagnostic on the cursor line, if any

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetFileInfo updates the file path and language shown.
func (sb *StatusBar) SetFileInfo(path, language string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.language = language
}

// SetCursorInfo updates the cursor line and the diagnostic shown for it.
func (sb *StatusBar) SetCursorInfo(line, lineCount int, lineDiag string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.line = line
	sb.lineCount = lineCount
	sb.lineDiag = lineDiag
}

// SetDiagnostics updates the blocking and advisory counts.
func (sb *StatusBar) SetDiagnostics(errs []types.SyntaxError) {
	blocking, advisory := checker.Summary(errs)
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.blocking = blocking
	sb.advisory = advisory
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line the bar would draw and the theme style name for it.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, "StatusBar"
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), sb.styleName()
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	lang := ""
	if sb.language != "" {
		lang = " [" + sb.language + "]"
	}
	text := fmt.Sprintf("%s%s -- Line: %d/%d -- %s", fPath, lang, sb.line+1, sb.lineCount, sb.countsText())
	if sb.lineDiag != "" {
		text += " -- " + sb.lineDiag
	}
	return text
}

func (sb *StatusBar) countsText() string {
	if sb.blocking == 0 && sb.advisory == 0 {
		return "no syntax errors"
	}
	return fmt.Sprintf("%d %s, %d %s",
		sb.blocking, plural(sb.blocking, "error", "errors"),
		sb.advisory, plural(sb.advisory, "suggestion", "suggestions"))
}

func (sb *StatusBar) styleName() string {
	switch {
	case sb.blocking > 0:
		return "StatusBarError"
	case sb.advisory > 0:
		return "StatusBarAdvisory"
	default:
		return "StatusBarOK"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Draw renders the status bar onto the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, styleName := sb.Text()
	style := activeTheme.GetStyle(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}

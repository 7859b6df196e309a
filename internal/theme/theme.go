// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to terminal styles. Highlight categories use their
// Category.String() names ("comment", "keyword", ...); UI elements use
// capitalized names ("Default", "LineNumber", "StatusBar", ...).
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, then its base name (before the first dot), then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// StyleFor returns the style of a highlight category. Plain text uses "Default".
func (t *Theme) StyleFor(cat types.Category) tcell.Style {
	if cat == types.Plain {
		return t.GetStyle("Default")
	}
	return t.GetStyle(cat.String())
}

// Built-in palettes, one per background mode.
var (
	Light Theme
	Dark  Theme
)

func init() {
	lightBase := tcell.StyleDefault.Foreground(tcell.NewHexColor(0x000000)).Background(tcell.ColorReset)
	Light = Theme{
		Name:   "Tidelex Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			"Default":            lightBase,
			"LineNumber":         lightBase.Foreground(tcell.NewHexColor(0x999999)),
			"LineNumberError":    lightBase.Foreground(tcell.NewHexColor(0xf44336)),
			"LineNumberAdvisory": lightBase.Foreground(tcell.NewHexColor(0x9a6700)),
			"StatusBar":          tcell.StyleDefault.Background(tcell.NewHexColor(0xe0e0e0)).Foreground(tcell.NewHexColor(0x000000)),
			"StatusBarError":     tcell.StyleDefault.Background(tcell.NewHexColor(0xe0e0e0)).Foreground(tcell.NewHexColor(0xf44336)).Bold(true),
			"StatusBarAdvisory":  tcell.StyleDefault.Background(tcell.NewHexColor(0xe0e0e0)).Foreground(tcell.NewHexColor(0x9a6700)),
			"StatusBarOK":        tcell.StyleDefault.Background(tcell.NewHexColor(0xe0e0e0)).Foreground(tcell.NewHexColor(0x4caf50)),

			"comment":  lightBase.Foreground(tcell.NewHexColor(0x008000)),
			"string":   lightBase.Foreground(tcell.NewHexColor(0xa31515)),
			"keyword":  lightBase.Foreground(tcell.NewHexColor(0x0000ff)).Bold(true),
			"type":     lightBase.Foreground(tcell.NewHexColor(0x267f99)).Bold(true),
			"modifier": lightBase.Foreground(tcell.NewHexColor(0x000080)).Bold(true),
		},
	}

	darkBase := tcell.StyleDefault.Foreground(tcell.NewHexColor(0xd4d4d4)).Background(tcell.ColorReset)
	Dark = Theme{
		Name:   "Tidelex Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":            darkBase,
			"LineNumber":         darkBase.Foreground(tcell.NewHexColor(0x5c6370)),
			"LineNumberError":    darkBase.Foreground(tcell.NewHexColor(0xf44336)),
			"LineNumberAdvisory": darkBase.Foreground(tcell.NewHexColor(0xe5c07b)),
			"StatusBar":          tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(tcell.NewHexColor(0xc5cdd9)),
			"StatusBarError":     tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(tcell.NewHexColor(0xf44336)).Bold(true),
			"StatusBarAdvisory":  tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(tcell.NewHexColor(0xe5c07b)),
			"StatusBarOK":        tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(tcell.NewHexColor(0x98c379)),

			"comment":  darkBase.Foreground(tcell.NewHexColor(0x6a9955)),
			"string":   darkBase.Foreground(tcell.NewHexColor(0xce9178)),
			"keyword":  darkBase.Foreground(tcell.NewHexColor(0x569cd6)).Bold(true),
			"type":     darkBase.Foreground(tcell.NewHexColor(0x4ec9b0)).Bold(true),
			"modifier": darkBase.Foreground(tcell.NewHexColor(0xdcdcaa)).Bold(true),
		},
	}
}

// Builtin returns the built-in palette for the requested background mode.
func Builtin(dark bool) *Theme {
	if dark {
		return &Dark
	}
	return &Light
}

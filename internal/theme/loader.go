// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/types"
)

// styleDef is one [styles.<name>] table of a theme file.
// Pointers distinguish unset attributes from false.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// categoryKeys holds the style names of the non-plain highlight categories.
var categoryKeys = map[string]bool{
	types.Comment.String():  true,
	types.String.String():   true,
	types.Keyword.String():  true,
	types.Type.String():     true,
	types.Modifier.String(): true,
}

// LoadThemeFromFile reads a TOML theme. A theme without a name is named
// after its file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}

	theme, err := ParseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		logger.DebugTagf("theme", "Theme file '%s' has no name, using '%s'", filePath, theme.Name)
	}
	logger.DebugTagf("theme", "Loaded theme '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

// ParseTheme decodes TOML theme data. Defined styles inherit unset
// attributes from the theme's "Default" style. Styles the file omits come
// from the built-in palette of the same mode: highlight categories keep
// only their color and attributes over the theme's Default, UI styles are
// taken as they are. Styles that fail to parse are skipped.
func ParseTheme(data []byte) (*Theme, error) {
	var file themeFile
	metadata, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", file.Name, undecoded)
	}

	theme := &Theme{
		Name:   file.Name,
		IsDark: file.IsDark,
		Styles: make(map[string]tcell.Style, len(file.Styles)),
	}
	builtin := Builtin(file.IsDark)

	base := builtin.GetStyle("Default")
	if def, ok := file.Styles["Default"]; ok {
		style, err := def.apply(tcell.StyleDefault)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using the built-in one: %v", theme.Name, err)
		} else {
			base = style
		}
	}
	theme.Styles["Default"] = base

	for name, def := range file.Styles {
		if name == "Default" {
			continue
		}
		if isLower(name) && !categoryKeys[name] {
			logger.Warnf("Theme '%s': '%s' is not a highlight category", theme.Name, name)
		}
		style, err := def.apply(base)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	for name, style := range builtin.Styles {
		if _, ok := theme.Styles[name]; ok {
			continue
		}
		if _, defined := file.Styles[name]; defined {
			continue // present but unparsable
		}
		if categoryKeys[name] {
			fg, _, attrs := style.Decompose()
			style = base.Foreground(fg).Attributes(attrs)
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

func isLower(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// apply layers the set attributes of d over base.
func (d styleDef) apply(base tcell.Style) (tcell.Style, error) {
	style := base

	if d.Fg != nil {
		color, err := parseColorString(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *d.Fg, err)
		}
		style = style.Foreground(color)
	}
	if d.Bg != nil {
		color, err := parseColorString(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *d.Bg, err)
		}
		style = style.Background(color)
	}

	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, "reset", "default" and tcell color names.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
	}
	color := tcell.GetColor(s)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
	}
	return color, nil
}

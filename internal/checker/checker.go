// Package checker reports heuristic syntax diagnostics: bracket balance,
// unclosed quotes and per-language statement terminators.
package checker

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/tidelex/internal/types"
)

// Style selects the language-specific line heuristic.
type Style int

const (
	// StyleColon flags block openers missing a trailing ':' (Python-like).
	StyleColon Style = iota
	// StyleSemicolon flags statements missing a ';' (Java-like).
	StyleSemicolon
	// StyleSemicolonAdvisory suggests a ';' where the language makes it optional (Kotlin-like).
	StyleSemicolonAdvisory
)

var styleNames = [...]string{
	StyleColon:             "colon",
	StyleSemicolon:         "semicolon",
	StyleSemicolonAdvisory: "advisory",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle maps a style name ("colon", "semicolon", "advisory") to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "colon", "python":
		return StyleColon, nil
	case "semicolon", "strict", "java":
		return StyleSemicolon, nil
	case "advisory", "optional", "kotlin":
		return StyleSemicolonAdvisory, nil
	}
	return StyleColon, fmt.Errorf("unknown checker style %q", name)
}

// defaultStyles maps lowercase extensions to heuristics.
var defaultStyles = map[string]Style{
	".py":   StyleColon,
	".pyw":  StyleColon,
	".java": StyleSemicolon,
	".c":    StyleSemicolon,
	".h":    StyleSemicolon,
	".cpp":  StyleSemicolon,
	".cc":   StyleSemicolon,
	".cxx":  StyleSemicolon,
	".hpp":  StyleSemicolon,
	".kt":   StyleSemicolonAdvisory,
	".kts":  StyleSemicolonAdvisory,
}

// Checker runs the bracket, quote and style checks. It holds no per-call
// state and is safe for concurrent use.
type Checker struct {
	fallback Style
	styles   map[string]Style
}

// Option configures a Checker.
type Option func(*Checker)

// WithFallback sets the style used for unrecognized extensions.
func WithFallback(s Style) Option {
	return func(c *Checker) { c.fallback = s }
}

// WithStyles adds or overrides extension-to-style mappings.
func WithStyles(styles map[string]Style) Option {
	return func(c *Checker) {
		for ext, s := range styles {
			c.styles[normalizeExt(ext)] = s
		}
	}
}

// New creates a Checker with the built-in extension table and a colon
// fallback unless overridden.
func New(opts ...Option) *Checker {
	c := &Checker{
		fallback: StyleColon,
		styles:   make(map[string]Style, len(defaultStyles)),
	}
	for ext, s := range defaultStyles {
		c.styles[ext] = s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default returns a Checker that falls back to the colon heuristic.
func Default() *Checker {
	return New()
}

// Fallback returns the style used for unrecognized extensions.
func (c *Checker) Fallback() Style {
	return c.fallback
}

// StyleFor resolves a file name, ".ext" or bare "ext" to a style.
func (c *Checker) StyleFor(hint string) Style {
	if s, ok := c.Lookup(hint); ok {
		return s
	}
	return c.fallback
}

// Lookup is StyleFor without the fallback.
func (c *Checker) Lookup(hint string) (Style, bool) {
	s, ok := c.styles[normalizeExt(hint)]
	return s, ok
}

func normalizeExt(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if ext := filepath.Ext(hint); ext != "" {
		return ext
	}
	if hint == "" {
		return ""
	}
	return "." + hint
}

// Check runs every check over code and returns diagnostics ordered by line.
// Within a line, bracket diagnostics precede quote diagnostics, which
// precede the style heuristic.
func (c *Checker) Check(code, hint string) []types.SyntaxError {
	return c.CheckStyle(code, c.StyleFor(hint))
}

// CheckStyle is Check with an explicit heuristic.
func (c *Checker) CheckStyle(code string, style Style) []types.SyntaxError {
	lines := strings.Split(code, "\n")

	var errs []types.SyntaxError
	errs = append(errs, checkBrackets(lines)...)
	errs = append(errs, checkQuotes(lines)...)
	switch style {
	case StyleSemicolon:
		errs = append(errs, checkSemicolons(lines, false)...)
	case StyleSemicolonAdvisory:
		errs = append(errs, checkSemicolons(lines, true)...)
	default:
		errs = append(errs, checkColons(lines)...)
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Line < errs[j].Line
	})
	return errs
}

// HasBlocking reports whether any diagnostic is more than a suggestion.
func HasBlocking(errs []types.SyntaxError) bool {
	for _, e := range errs {
		if !e.Kind.Advisory() {
			return true
		}
	}
	return false
}

// internal/app/analyzer.go
package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bethropolis/tidelex/internal/checker"
	"github.com/bethropolis/tidelex/internal/highlighter"
	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/tui"
	"github.com/bethropolis/tidelex/internal/types"
)

// Analyzer resolves a file's language, highlights and checks it.
// It is safe for concurrent use.
type Analyzer struct {
	checker         *checker.Checker
	defaultLanguage string
	cache           *gocache.Cache // nil when caching is off
}

// NewAnalyzer creates an Analyzer. A nil checker uses checker.Default(); an
// empty defaultLanguage uses highlighter.DefaultLanguage.
func NewAnalyzer(c *checker.Checker, defaultLanguage string) *Analyzer {
	if c == nil {
		c = checker.Default()
	}
	if defaultLanguage == "" {
		defaultLanguage = highlighter.DefaultLanguage
	}
	return &Analyzer{checker: c, defaultLanguage: defaultLanguage}
}

// EnableCache reuses results for identical path and content for ttl.
// A non-positive ttl turns caching off. Call before sharing the Analyzer.
func (a *Analyzer) EnableCache(ttl time.Duration) {
	if ttl <= 0 {
		a.cache = nil
		return
	}
	a.cache = gocache.New(ttl, 2*ttl)
}

func cacheKey(path string, content []byte) string {
	sum := sha256.Sum256(content)
	return path + "\x00" + hex.EncodeToString(sum[:])
}

// Result is the outcome of analyzing one document.
type Result struct {
	Path     string
	Language *lang.Language
	Text     string
	Spans    highlighter.HighlightResult
	Errors   []types.SyntaxError
	Style    checker.Style
	Elapsed  time.Duration
	Cached   bool // served from the analysis cache
}

// clone copies r deeply enough that edits to the copy's spans or
// diagnostics never reach r.
func (r *Result) clone() *Result {
	c := *r
	if r.Spans != nil {
		c.Spans = make(highlighter.HighlightResult, len(r.Spans))
		for i, line := range r.Spans {
			c.Spans[i] = append([]types.Span(nil), line...)
		}
	}
	c.Errors = append([]types.SyntaxError(nil), r.Errors...)
	return &c
}

// Lines splits the analyzed text the way the highlighter does.
func (r *Result) Lines() []string {
	return strings.Split(r.Text, "\n")
}

// Blocking reports whether any diagnostic is more than a suggestion.
func (r *Result) Blocking() bool {
	return checker.HasBlocking(r.Errors)
}

// Report formats the diagnostics as the compile report.
func (r *Result) Report() string {
	return checker.FormatReport(r.Path, r.Errors)
}

// Document converts the result for the viewer.
func (r *Result) Document() *tui.Document {
	return &tui.Document{
		Path:     r.Path,
		Language: r.Language.Name,
		Lines:    r.Lines(),
		Spans:    r.Spans,
		Errors:   r.Errors,
	}
}

// Analyze highlights and checks content as the file at path.
func (a *Analyzer) Analyze(path string, content []byte) (*Result, error) {
	var key string
	if a.cache != nil {
		key = cacheKey(path, content)
		if v, found := a.cache.Get(key); found {
			if cached, ok := v.(*Result); ok {
				logger.DebugTagf("analyze", "cache hit for '%s'", path)
				hit := cached.clone()
				hit.Cached = true
				return hit, nil
			}
		}
	}

	language, err := lang.ForFileOrDefault(path, a.defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("resolving language for '%s': %w", path, err)
	}
	rules, err := language.Rules()
	if err != nil {
		return nil, fmt.Errorf("loading %s rules: %w", language.Name, err)
	}

	start := time.Now()
	text := string(content)
	style := a.styleFor(path, language)
	result := &Result{
		Path:     path,
		Language: language,
		Text:     text,
		Spans:    highlighter.Highlight(text, rules),
		Errors:   a.checker.CheckStyle(text, style),
		Style:    style,
	}
	result.Elapsed = time.Since(start)

	blocking, advisory := checker.Summary(result.Errors)
	logger.DebugTagf("analyze", "Analyzed '%s' as %s (%s) in %v: %d lines, %d errors, %d suggestions",
		path, language.Name, style, result.Elapsed, len(result.Spans), blocking, advisory)
	if a.cache != nil {
		a.cache.Set(key, result.clone(), gocache.DefaultExpiration)
	}
	return result, nil
}

// AnalyzeFile reads path and analyzes it.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", path, err)
	}
	return a.Analyze(path, content)
}

// styleFor prefers an explicit extension mapping, then the style declared by
// a language matched by extension, then the checker fallback.
func (a *Analyzer) styleFor(path string, language *lang.Language) checker.Style {
	if s, ok := a.checker.Lookup(path); ok {
		return s
	}
	if lang.GetForFile(path) == language && language.CheckStyle != "" {
		if s, err := checker.ParseStyle(language.CheckStyle); err == nil {
			return s
		}
		logger.Warnf("Language %s declares unknown check style %q", language.Name, language.CheckStyle)
	}
	return a.checker.Fallback()
}

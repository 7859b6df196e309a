// Package highlighter turns source text and a lang.Rules vocabulary into
// per-line spans of highlight categories.
package highlighter

import (
	"strings"

	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/types"
)

// HighlightResult holds one ordered span list per line of the document.
// The spans of a line cover it exactly and never overlap.
type HighlightResult [][]types.Span

// Line returns the spans of line index, or nil when out of range.
func (r HighlightResult) Line(index int) []types.Span {
	if index < 0 || index >= len(r) {
		return nil
	}
	return r[index]
}

// Highlight splits text on '\n' and highlights every line. Lines touching a
// block comment are a single comment span. Nil rules highlight nothing.
func Highlight(text string, rules *lang.Rules) HighlightResult {
	if rules == nil {
		rules = &lang.Rules{}
	}
	lines := strings.Split(text, "\n")
	result := make(HighlightResult, len(lines))

	blocks := blockCursor{ranges: BlockComments(text, rules)}
	scanner := newLineScanner(rules)

	lineStart := 0
	for i, line := range lines {
		lineEnd := lineStart + len(line)
		if blocks.intersects(lineStart, lineEnd) {
			result[i] = fill([]types.Span{{Start: 0, End: len(line), Category: types.Comment}}, len(line))
		} else {
			result[i] = scanner.highlight(line)
		}
		lineStart = lineEnd + 1 // +1 for newline
	}
	return result
}

// HighlightLine highlights a single line without block-comment context.
func HighlightLine(line string, rules *lang.Rules) []types.Span {
	if rules == nil {
		rules = &lang.Rules{}
	}
	return newLineScanner(rules).highlight(line)
}

// lineScanner caches the parts of the rules every line needs.
type lineScanner struct {
	rules   *lang.Rules
	markers []string
	delims  []rune
}

func newLineScanner(rules *lang.Rules) *lineScanner {
	return &lineScanner{
		rules:   rules,
		markers: rules.LineCommentMarkers(),
		delims:  rules.Delimiters(),
	}
}

func (s *lineScanner) highlight(line string) []types.Span {
	if line == "" {
		return nil
	}
	// Construction order breaks ties between candidates sharing a start.
	var candidates []types.Span
	candidates = append(candidates, findLineComments(line, s.markers, s.delims)...)
	candidates = append(candidates, findStrings(line, s.delims)...)
	candidates = append(candidates, findWords(line, s.rules.Keywords, types.Keyword)...)
	candidates = append(candidates, findWords(line, s.rules.Types, types.Type)...)
	candidates = append(candidates, findWords(line, s.rules.Modifiers, types.Modifier)...)

	return fill(resolve(candidates), len(line))
}

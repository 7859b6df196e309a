package highlighter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tidelex/internal/types"
)

// findLineComments returns the range from the earliest single-line marker
// outside a string to the end of the line. Markers are tried at every
// offset so a later marker never splits an earlier comment.
func findLineComments(line string, markers []string, delims []rune) []types.Span {
	q := newQuoteState(delims)
	for i := 0; i < len(line); {
		if !q.inString() {
			for _, marker := range markers {
				if marker != "" && strings.HasPrefix(line[i:], marker) {
					return []types.Span{{Start: i, End: len(line), Category: types.Comment}}
				}
			}
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		q.feed(r)
		i += size
	}
	return nil
}

// findStrings returns the string ranges of each delimiter, scanned
// independently. A backslash consumes the next rune and can neither open
// nor close a string. An unterminated string runs to the end of the line.
func findStrings(line string, delims []rune) []types.Span {
	var ranges []types.Span
	for _, d := range delims {
		for i := 0; i < len(line); {
			r, size := utf8.DecodeRuneInString(line[i:])
			if r == '\\' {
				i += size
				if i < len(line) {
					_, next := utf8.DecodeRuneInString(line[i:])
					i += next
				}
				continue
			}
			if r != d {
				i += size
				continue
			}
			end := closingDelimiter(line, i+size, d)
			if end == -1 {
				ranges = append(ranges, types.Span{Start: i, End: len(line), Category: types.String})
				break
			}
			ranges = append(ranges, types.Span{Start: i, End: end, Category: types.String})
			i = end
		}
	}
	return ranges
}

// closingDelimiter returns the offset just past the unescaped delimiter d
// found at or after from, or -1.
func closingDelimiter(line string, from int, d rune) int {
	escape := false
	for i := from; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case escape:
			escape = false
		case r == '\\':
			escape = true
		case r == d:
			return i + size
		}
		i += size
	}
	return -1
}

// findWords returns every case-insensitive, whole-word occurrence of words.
func findWords(line string, words []string, cat types.Category) []types.Span {
	var ranges []types.Span
	for _, word := range words {
		if word == "" {
			continue
		}
		for from := 0; ; {
			idx, n := indexFold(line, word, from)
			if idx == -1 {
				break
			}
			end := idx + n
			if isWordBoundary(line, idx, end) {
				ranges = append(ranges, types.Span{Start: idx, End: end, Category: cat})
			}
			_, size := utf8.DecodeRuneInString(line[idx:])
			from = idx + size
		}
	}
	return ranges
}

// indexFold is strings.Index with Unicode case folding, starting at from.
// It returns the match offset and the byte length of the matched text,
// which can differ from len(sub) when folded runes differ in width.
func indexFold(s, sub string, from int) (int, int) {
	for i := from; i < len(s); {
		if n := prefixFold(s[i:], sub); n >= 0 {
			return i, n
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, 0
}

// prefixFold reports the byte length of the prefix of s that folds to sub,
// or -1.
func prefixFold(s, sub string) int {
	n := 0
	for _, want := range sub {
		if n >= len(s) {
			return -1
		}
		got, size := utf8.DecodeRuneInString(s[n:])
		if got != want && !equalFoldRune(got, want) {
			return -1
		}
		n += size
	}
	return n
}

func equalFoldRune(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func isWordBoundary(line string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(line[:start])
		if isWordRune(before) {
			return false
		}
	}
	if end < len(line) {
		after, _ := utf8.DecodeRuneInString(line[end:])
		if isWordRune(after) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

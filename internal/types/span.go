// internal/types/span.go
package types

import "fmt"

// Category identifies how a span of text is highlighted.
type Category int

// The closed set of highlight categories.
const (
	Plain Category = iota
	Comment
	String
	Keyword
	Type
	Modifier
)

var categoryNames = [...]string{
	Plain:    "plain",
	Comment:  "comment",
	String:   "string",
	Keyword:  "keyword",
	Type:     "type",
	Modifier: "modifier",
}

// String returns the lowercase category name, which doubles as a theme style key.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Span is a half-open range [Start, End) tagged with a category.
// Offsets are byte offsets, relative to a line for highlighter output and
// absolute for document-wide ranges such as block comments.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and other share at least one offset.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the slice of line named by the span, clamped to the line.
func (s Span) Text(line string) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return ""
	}
	return line[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Category, s.Start, s.End)
}

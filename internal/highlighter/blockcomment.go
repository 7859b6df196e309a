package highlighter

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/types"
)

// BlockComments finds every /* ... */ range of text in absolute offsets.
// An opening marker inside an open string is ignored. Quote state is
// replayed from the start of the document, skipping the bodies of comments
// already accepted, so a stray quote inside one comment does not hide the
// opener of the next. An unclosed comment runs to the end of the document.
func BlockComments(text string, rules *lang.Rules) []types.Span {
	if rules == nil || !rules.HasBlockComments() {
		return nil
	}

	var ranges []types.Span
	q := newQuoteState(rules.Delimiters())

	for i := 0; i < len(text); {
		if !q.inString() && strings.HasPrefix(text[i:], lang.BlockCommentStart) {
			bodyStart := i + len(lang.BlockCommentStart)
			end := strings.Index(text[bodyStart:], lang.BlockCommentEnd)
			if end == -1 {
				ranges = append(ranges, types.Span{Start: i, End: len(text), Category: types.Comment})
				break
			}
			stop := bodyStart + end + len(lang.BlockCommentEnd)
			ranges = append(ranges, types.Span{Start: i, End: stop, Category: types.Comment})
			q.reset()
			i = stop
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		q.feed(r)
		i += size
	}
	return ranges
}

// blockCursor answers "does this line touch a block comment" for lines
// visited in document order.
type blockCursor struct {
	ranges []types.Span
	next   int
}

func (c *blockCursor) intersects(lineStart, lineEnd int) bool {
	for c.next < len(c.ranges) && c.ranges[c.next].End <= lineStart {
		c.next++
	}
	if c.next == len(c.ranges) {
		return false
	}
	r := c.ranges[c.next]
	return lineStart < r.End && lineEnd > r.Start
}

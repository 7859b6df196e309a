package highlighter

// quoteState replays string state one rune at a time. A backslash consumes
// the following rune, inside or outside a string, and a string only closes
// on the delimiter that opened it.
type quoteState struct {
	delims []rune
	active rune // 0 while outside a string
	escape bool
}

func newQuoteState(delims []rune) *quoteState {
	return &quoteState{delims: delims}
}

func (q *quoteState) feed(r rune) {
	if q.escape {
		q.escape = false
		return
	}
	if r == '\\' {
		q.escape = true
		return
	}
	if q.active != 0 {
		if r == q.active {
			q.active = 0
		}
		return
	}
	for _, d := range q.delims {
		if r == d {
			q.active = r
			return
		}
	}
}

// inString reports whether the next rune would fall inside an open string.
func (q *quoteState) inString() bool {
	return q.active != 0
}

func (q *quoteState) reset() {
	q.active = 0
	q.escape = false
}

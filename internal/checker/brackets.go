package checker

import (
	"fmt"

	"github.com/bethropolis/tidelex/internal/types"
)

var closers = map[rune]rune{
	'{': '}',
	'(': ')',
	'[': ']',
}

type openBracket struct {
	char rune
	line int
}

// checkBrackets matches { ( [ across the whole document.
func checkBrackets(lines []string) []types.SyntaxError {
	var errs []types.SyntaxError
	var stack []openBracket

	for lineIndex, line := range lines {
		col := 0
		for _, char := range line {
			col++
			switch char {
			case '{', '(', '[':
				stack = append(stack, openBracket{char: char, line: lineIndex + 1})
			case '}', ')', ']':
				if len(stack) == 0 {
					errs = append(errs, types.SyntaxError{
						Message: fmt.Sprintf("Unexpected closing bracket '%c'", char),
						Line:    lineIndex + 1,
						Column:  col,
						Kind:    types.UnmatchedBracket,
					})
					continue
				}
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if want := closers[open.char]; want != char {
					errs = append(errs, types.SyntaxError{
						Message: fmt.Sprintf("Mismatched brackets: expected '%c' but found '%c'", want, char),
						Line:    lineIndex + 1,
						Column:  col,
						Kind:    types.MismatchedBracket,
					})
				}
			}
		}
	}

	for _, open := range stack {
		errs = append(errs, types.SyntaxError{
			Message: fmt.Sprintf("Missing closing bracket '%c'", closers[open.char]),
			Line:    open.line,
			Column:  1,
			Kind:    types.MissingBracket,
		})
	}
	return errs
}

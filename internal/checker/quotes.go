package checker

import (
	"unicode/utf8"

	"github.com/bethropolis/tidelex/internal/types"
)

// checkQuotes reports quotes left open at the end of each line. Single and
// double quotes are tracked separately and neither toggles inside the other.
func checkQuotes(lines []string) []types.SyntaxError {
	var errs []types.SyntaxError

	for lineIndex, line := range lines {
		var inSingle, inDouble, escapeNext bool
		for _, char := range line {
			if escapeNext {
				escapeNext = false
				continue
			}
			switch char {
			case '\\':
				escapeNext = true
			case '\'':
				if !inDouble {
					inSingle = !inSingle
				}
			case '"':
				if !inSingle {
					inDouble = !inDouble
				}
			}
		}

		width := utf8.RuneCountInString(line)
		if inSingle {
			errs = append(errs, types.SyntaxError{
				Message: "Unclosed single quote",
				Line:    lineIndex + 1,
				Column:  width,
				Kind:    types.UnclosedQuote,
			})
		}
		if inDouble {
			errs = append(errs, types.SyntaxError{
				Message: "Unclosed double quote",
				Line:    lineIndex + 1,
				Column:  width,
				Kind:    types.UnclosedQuote,
			})
		}
	}
	return errs
}

package checker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidelex/internal/types"
)

// colonConstructs pairs a line prefix with the construct named in the message.
var colonConstructs = []struct {
	prefix string
	what   string
}{
	{"if ", "'if' statement"},
	{"for ", "'for' statement"},
	{"while ", "'while' statement"},
	{"def ", "function definition"},
	{"class ", "class definition"},
}

// checkColons flags block openers that do not end with ':'.
func checkColons(lines []string) []types.SyntaxError {
	var errs []types.SyntaxError
	for lineIndex, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasSuffix(trimmed, ":") {
			continue
		}
		for _, c := range colonConstructs {
			if strings.HasPrefix(trimmed, c.prefix) {
				errs = append(errs, types.SyntaxError{
					Message: fmt.Sprintf("Missing colon after %s", c.what),
					Line:    lineIndex + 1,
					Column:  utf8.RuneCountInString(trimmed),
					Kind:    types.MissingColon,
				})
			}
		}
	}
	return errs
}

// skipPrefixes are line starts that never need a terminator.
var skipPrefixes = []string{
	"//", "/*",
	"if ", "for ", "while ", "switch ", "try ", "catch ", "finally ",
	"{", "}",
}

// statementMarkers are the substrings that make a line look like a statement.
var statementMarkers = []string{"=", "return", "break", "continue", "throw"}

// checkSemicolons flags statement-looking lines without a trailing ';' or
// '{'. Matching is plain substring containment, so markers inside strings
// or identifiers count too. The advisory variant also skips Kotlin's
// "when " blocks and reports OptionalSemicolon.
func checkSemicolons(lines []string, advisory bool) []types.SyntaxError {
	var errs []types.SyntaxError
	for lineIndex, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hasAnyPrefix(trimmed, skipPrefixes) {
			continue
		}
		if advisory && strings.HasPrefix(trimmed, "when ") {
			continue
		}
		if !containsAny(trimmed, statementMarkers) {
			continue
		}
		if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "{") {
			continue
		}

		e := types.SyntaxError{
			Message: "Missing semicolon",
			Line:    lineIndex + 1,
			Column:  utf8.RuneCountInString(trimmed),
			Kind:    types.MissingSemicolon,
		}
		if advisory {
			e.Message = "Consider adding semicolon (optional in Kotlin)"
			e.Kind = types.OptionalSemicolon
		}
		errs = append(errs, e)
	}
	return errs
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

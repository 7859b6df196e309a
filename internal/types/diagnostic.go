// internal/types/diagnostic.go
package types

import "fmt"

// Kind classifies a heuristic syntax diagnostic.
type Kind int

// The closed set of diagnostic kinds.
const (
	UnmatchedBracket Kind = iota
	MismatchedBracket
	MissingBracket
	UnclosedQuote
	MissingColon
	MissingSemicolon
	OptionalSemicolon
)

var kindNames = [...]string{
	UnmatchedBracket:  "UnmatchedBracket",
	MismatchedBracket: "MismatchedBracket",
	MissingBracket:    "MissingBracket",
	UnclosedQuote:     "UnclosedQuote",
	MissingColon:      "MissingColon",
	MissingSemicolon:  "MissingSemicolon",
	OptionalSemicolon: "OptionalSemicolon",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Advisory reports whether the kind is a style suggestion rather than an error.
func (k Kind) Advisory() bool {
	return k == OptionalSemicolon
}

// SyntaxError is one heuristic diagnostic.
// Line and Column are 1-based; Column counts runes.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
	Kind    Kind
}

// Error implements the error interface so diagnostics can be logged or wrapped.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

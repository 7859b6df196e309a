package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "modifier", Modifier.String())
	assert.Equal(t, "category(42)", Category(42).String())
}

func TestSpanHelpers(t *testing.T) {
	s := Span{Start: 2, End: 5, Category: Keyword}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))

	assert.True(t, s.Overlaps(Span{Start: 4, End: 9}))
	assert.False(t, s.Overlaps(Span{Start: 5, End: 9}), "half-open ranges touching do not overlap")
	assert.False(t, s.Overlaps(Span{Start: 0, End: 2}))

	assert.Equal(t, "int", s.Text("x int y"))
	assert.Equal(t, "lo", Span{Start: 3, End: 10}.Text("hello"), "clamped to the line")
	assert.Equal(t, "", Span{Start: 7, End: 9}.Text("hello"))
	assert.Equal(t, "keyword[2,5)", s.String())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "MismatchedBracket", MismatchedBracket.String())
	assert.Equal(t, "Kind(-1)", Kind(-1).String())
	for k := UnmatchedBracket; k <= OptionalSemicolon; k++ {
		assert.Equal(t, k == OptionalSemicolon, k.Advisory(), k.String())
	}
}

func TestSyntaxErrorIsError(t *testing.T) {
	e := SyntaxError{Message: "Missing colon after 'if' statement", Line: 3, Column: 7, Kind: MissingColon}
	assert.Equal(t, "3:7: Missing colon after 'if' statement", e.Error())

	wrapped := fmt.Errorf("check: %w", e)
	var got SyntaxError
	assert.True(t, errors.As(wrapped, &got))
	assert.Equal(t, MissingColon, got.Kind)
}

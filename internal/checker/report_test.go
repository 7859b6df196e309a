package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/tidelex/internal/types"
)

func TestFormatReport(t *testing.T) {
	assert.Equal(t, "Main.java: no syntax errors found\n", FormatReport("Main.java", nil))

	errs := New().Check("x = (1", "Main.java")
	want := "Compilation failed due to syntax errors:\n\n" +
		"Line 1: Missing closing bracket ')'\n" +
		"Line 1: Missing semicolon\n" +
		"\nPlease fix these errors before compiling.\n"
	assert.Equal(t, want, FormatReport("Main.java", errs))

	advisory := []types.SyntaxError{{Message: "Consider adding semicolon (optional in Kotlin)", Line: 3, Column: 5, Kind: types.OptionalSemicolon}}
	assert.Equal(t, "Style suggestions:\n\nLine 3: Consider adding semicolon (optional in Kotlin)\n", FormatReport("a.kt", advisory))
}

func TestSummary(t *testing.T) {
	errs := []types.SyntaxError{
		{Kind: types.MissingColon},
		{Kind: types.OptionalSemicolon},
		{Kind: types.OptionalSemicolon},
	}
	blocking, advisory := Summary(errs)
	assert.Equal(t, 1, blocking)
	assert.Equal(t, 2, advisory)
	assert.True(t, HasBlocking(errs))
	assert.False(t, HasBlocking(errs[1:]))
}

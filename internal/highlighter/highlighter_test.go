package highlighter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/types"
)

func span(start, end int, cat types.Category) types.Span {
	return types.Span{Start: start, End: end, Category: cat}
}

func javaLike() *lang.Rules {
	return &lang.Rules{
		Keywords:  []string{"if", "return", "class"},
		Types:     []string{"int", "String"},
		Modifiers: []string{"public", "static"},
		Comments:  []string{"//", "/*", "*/"},
		Strings:   []string{"\"", "'"},
	}
}

func TestHighlightScenario(t *testing.T) {
	rules := &lang.Rules{
		Keywords: []string{"if"},
		Comments: []string{"//"},
		Strings:  []string{"\""},
	}
	got := Highlight("if (x) { } // done", rules)
	require.Len(t, got, 1)
	assert.Equal(t, []types.Span{
		span(0, 2, types.Keyword),
		span(2, 11, types.Plain),
		span(11, 18, types.Comment),
	}, got[0])
}

func TestHighlightLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []types.Span
	}{
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "no rules match",
			line: "x = y",
			want: []types.Span{span(0, 5, types.Plain)},
		},
		{
			name: "keyword type modifier",
			line: "public static int x",
			want: []types.Span{
				span(0, 6, types.Modifier),
				span(6, 7, types.Plain),
				span(7, 13, types.Modifier),
				span(13, 14, types.Plain),
				span(14, 17, types.Type),
				span(17, 19, types.Plain),
			},
		},
		{
			name: "case insensitive",
			line: "IF Return",
			want: []types.Span{
				span(0, 2, types.Keyword),
				span(2, 3, types.Plain),
				span(3, 9, types.Keyword),
			},
		},
		{
			name: "not a whole word",
			line: "ifx _if if2",
			want: []types.Span{span(0, 11, types.Plain)},
		},
		{
			name: "parenthesized keyword",
			line: "(if)",
			want: []types.Span{
				span(0, 1, types.Plain),
				span(1, 3, types.Keyword),
				span(3, 4, types.Plain),
			},
		},
		{
			name: "keyword inside string",
			line: `x = "if int"`,
			want: []types.Span{
				span(0, 4, types.Plain),
				span(4, 12, types.String),
			},
		},
		{
			name: "comment marker inside string",
			line: `s = "http://x" // real`,
			want: []types.Span{
				span(0, 4, types.Plain),
				span(4, 14, types.String),
				span(14, 15, types.Plain),
				span(15, 22, types.Comment),
			},
		},
		{
			name: "comment evicts string",
			line: `// say "hi"`,
			want: []types.Span{span(0, 11, types.Comment)},
		},
		{
			name: "unterminated string runs to end of line",
			line: `x = "abc // no`,
			want: []types.Span{
				span(0, 4, types.Plain),
				span(4, 14, types.String),
			},
		},
		{
			name: "escaped delimiter does not close",
			line: `"a\"b" c`,
			want: []types.Span{
				span(0, 6, types.String),
				span(6, 8, types.Plain),
			},
		},
		{
			name: "other quote inside string",
			line: `"it's" x`,
			want: []types.Span{
				span(0, 6, types.String),
				span(6, 8, types.Plain),
			},
		},
		{
			name: "escaped quote outside string opens nothing",
			line: `\"if`,
			want: []types.Span{
				span(0, 2, types.Plain),
				span(2, 4, types.Keyword),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightLine(tt.line, javaLike()))
		})
	}
}

func TestEscapeParity(t *testing.T) {
	rules := &lang.Rules{Strings: []string{"\""}}

	// One backslash: the second quote is escaped, the string never closes.
	odd := `"a\" b`
	assert.Equal(t, []types.Span{span(0, len(odd), types.String)}, HighlightLine(odd, rules))

	// Two backslashes: the quote closes the string.
	even := `"a\\" b`
	assert.Equal(t, []types.Span{
		span(0, 5, types.String),
		span(5, 7, types.Plain),
	}, HighlightLine(even, rules))

	three := `"a\\\" b`
	assert.Equal(t, []types.Span{span(0, len(three), types.String)}, HighlightLine(three, rules))
}

func TestHighlightEmptyInput(t *testing.T) {
	got := Highlight("", javaLike())
	require.Len(t, got, 1)
	assert.Empty(t, got[0])

	got = Highlight("a\n\nb", nil)
	require.Len(t, got, 3)
	assert.Empty(t, got[1])
	assert.Equal(t, []types.Span{span(0, 1, types.Plain)}, got[2])
}

func TestBlockComments(t *testing.T) {
	rules := javaLike()

	text := "int a; /* one\ntwo */ int b;\nint c;"
	assert.Equal(t, []types.Span{span(7, 20, types.Comment)}, BlockComments(text, rules))

	got := Highlight(text, rules)
	require.Len(t, got, 3)
	assert.Equal(t, []types.Span{span(0, 13, types.Comment)}, got[0])
	assert.Equal(t, []types.Span{span(0, 13, types.Comment)}, got[1], "whole line is comment even after the closer")
	assert.Equal(t, types.Type, got[2][0].Category)
}

func TestBlockCommentUnterminated(t *testing.T) {
	text := "int a;\n/* open\nstill\n\nint b;"
	got := Highlight(text, javaLike())
	require.Len(t, got, 5)
	assert.Equal(t, types.Type, got[0][0].Category)
	for i := 1; i < 5; i++ {
		for _, s := range got[i] {
			assert.Equal(t, types.Comment, s.Category, "line %d", i)
		}
	}
	assert.Equal(t, []types.Span{span(7, len(text), types.Comment)}, BlockComments(text, javaLike()))
}

func TestBlockCommentInsideString(t *testing.T) {
	rules := javaLike()
	text := "s = \"/* not\";\nint x; /* yes */"

	assert.Equal(t, []types.Span{span(21, 30, types.Comment)}, BlockComments(text, rules))

	got := Highlight(text, rules)
	assert.Equal(t, types.String, got[0][1].Category)
	assert.Equal(t, types.Comment, got[1][0].Category)
}

func TestBlockCommentQuoteReplaySkipsComments(t *testing.T) {
	text := "/* it's */ x\n/* second */"
	assert.Equal(t, []types.Span{
		span(0, 10, types.Comment),
		span(13, 25, types.Comment),
	}, BlockComments(text, javaLike()))
}

func TestBlockCommentsDisabled(t *testing.T) {
	rules := &lang.Rules{Comments: []string{"#"}}
	assert.Nil(t, BlockComments("/* x */", rules))
	assert.Nil(t, BlockComments("/* x */", nil))

	got := HighlightLine("x # /* y", rules)
	assert.Equal(t, []types.Span{
		span(0, 2, types.Plain),
		span(2, 8, types.Comment),
	}, got)
}

func TestTieBreakByConstructionOrder(t *testing.T) {
	rules := &lang.Rules{
		Keywords: []string{"val"},
		Types:    []string{"val"},
	}
	got := HighlightLine("val", rules)
	assert.Equal(t, []types.Span{span(0, 3, types.Keyword)}, got)
}

func TestEarliestLineCommentWins(t *testing.T) {
	rules := &lang.Rules{
		Keywords: []string{"if"},
		Comments: []string{"#", "//"},
	}
	got := HighlightLine("if # a // b", rules)
	assert.Equal(t, []types.Span{
		span(0, 2, types.Keyword),
		span(2, 3, types.Plain),
		span(3, 11, types.Comment),
	}, got)

	got = HighlightLine("x // a # b", rules)
	assert.Equal(t, []types.Span{
		span(0, 2, types.Plain),
		span(2, 10, types.Comment),
	}, got)
}

func TestKeywordFoldAcrossWidths(t *testing.T) {
	// U+212A KELVIN SIGN folds to 'k' but is three bytes wide.
	rules := &lang.Rules{Keywords: []string{"k"}}
	got := HighlightLine("\u212a = 1", rules)
	assert.Equal(t, []types.Span{
		span(0, 3, types.Keyword),
		span(3, 7, types.Plain),
	}, got)
}

func TestHighlightResultLine(t *testing.T) {
	r := Highlight("a\nb", nil)
	assert.NotNil(t, r.Line(1))
	assert.Nil(t, r.Line(2))
	assert.Nil(t, r.Line(-1))
}

// genText draws source-ish text rich in markers, quotes and escapes.
func genText() *rapid.Generator[string] {
	pieces := []string{"if", "int", "public", " ", "x", "_", "\"", "'", "\\", "//", "/*", "*/", "\n", "(", ")", "é", "IF"}
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(pieces), 0, 40).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

func TestPropertyCoverage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		lines := strings.Split(text, "\n")
		got := Highlight(text, javaLike())

		require.Len(rt, got, len(lines))
		for i, line := range lines {
			var sb strings.Builder
			last := 0
			for _, s := range got[i] {
				require.Equal(rt, last, s.Start, "spans must be contiguous on line %d", i)
				require.Greater(rt, s.End, s.Start, "spans must be non-empty")
				sb.WriteString(s.Text(line))
				last = s.End
			}
			require.Equal(rt, line, sb.String(), "spans must reconstruct line %d", i)
		}
	})
}

func TestPropertyCommentPriority(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		line := strings.ReplaceAll(genText().Draw(rt, "line"), "\n", "")
		spans := HighlightLine(line, javaLike())
		for i, s := range spans {
			if s.Category != types.Comment {
				continue
			}
			// A line comment always runs to the end of the line.
			require.Equal(rt, len(line), s.End)
			require.Equal(rt, len(spans)-1, i)
		}
	})
}

func TestPropertyConcurrentCallsAgree(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		want := Highlight(text, javaLike())

		results := make(chan HighlightResult, 4)
		for i := 0; i < 4; i++ {
			go func() { results <- Highlight(text, javaLike()) }()
		}
		for i := 0; i < 4; i++ {
			require.Equal(rt, want, <-results)
		}
	})
}

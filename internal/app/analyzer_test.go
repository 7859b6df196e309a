package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidelex/internal/checker"
	"github.com/bethropolis/tidelex/internal/highlighter"
	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/types"
)

func TestMain(m *testing.M) {
	highlighter.RegisterLanguages()
	os.Exit(m.Run())
}

func kinds(errs []types.SyntaxError) []types.Kind {
	out := make([]types.Kind, len(errs))
	for i, e := range errs {
		out[i] = e.Kind
	}
	return out
}

func lines(errs []types.SyntaxError) []int {
	out := make([]int, len(errs))
	for i, e := range errs {
		out[i] = e.Line
	}
	return out
}

func TestAnalyzeKotlin(t *testing.T) {
	a := NewAnalyzer(nil, "")
	res, err := a.Analyze("Main.kt", []byte("val x = 1\nfun f() {\n  return\n}"))
	require.NoError(t, err)

	assert.Equal(t, "Kotlin", res.Language.Name)
	assert.Equal(t, checker.StyleSemicolonAdvisory, res.Style)
	assert.Equal(t, []int{1, 3}, lines(res.Errors))
	assert.Equal(t, []types.Kind{types.OptionalSemicolon, types.OptionalSemicolon}, kinds(res.Errors))
	assert.False(t, res.Blocking())
	assert.Contains(t, res.Report(), "Style suggestions:")

	require.Len(t, res.Spans, 4)
	assert.Equal(t, types.Span{Start: 0, End: 3, Category: types.Keyword}, res.Spans[0][0])

	doc := res.Document()
	assert.Equal(t, "Kotlin", doc.Language)
	assert.Equal(t, []string{"val x = 1", "fun f() {", "  return", "}"}, doc.Lines)
}

func TestAnalyzeUnknownExtension(t *testing.T) {
	a := NewAnalyzer(nil, "")
	res, err := a.Analyze("notes.txt", []byte("if x\n"))
	require.NoError(t, err)

	assert.Equal(t, "Kotlin", res.Language.Name, "highlighting falls back to the default language")
	assert.Equal(t, checker.StyleColon, res.Style, "checking falls back to the checker fallback")
	assert.Equal(t, []types.Kind{types.MissingColon}, kinds(res.Errors))
	assert.True(t, res.Blocking())
	assert.Contains(t, res.Report(), "Compilation failed due to syntax errors:")
	assert.Len(t, res.Spans, 2)
}

func TestAnalyzeDefaultLanguage(t *testing.T) {
	res, err := NewAnalyzer(nil, "python").Analyze("script", []byte("# hi"))
	require.NoError(t, err)
	assert.Equal(t, "Python", res.Language.Name)
	assert.Equal(t, []types.Span{{Start: 0, End: 4, Category: types.Comment}}, res.Spans[0])

	_, err = NewAnalyzer(nil, "Cobol").Analyze("x.cbl", nil)
	assert.ErrorIs(t, err, lang.ErrUnknownLanguage)
}

func TestAnalyzeConfiguredStyles(t *testing.T) {
	c := checker.New(checker.WithStyles(map[string]checker.Style{".kt": checker.StyleSemicolon}))
	res, err := NewAnalyzer(c, "").Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.Equal(t, checker.StyleSemicolon, res.Style)
	assert.Equal(t, []types.Kind{types.MissingSemicolon}, kinds(res.Errors))
}

func TestLanguageCheckStyle(t *testing.T) {
	toy := &lang.Language{Name: "AppToy", Extensions: []string{".apptoy"}, CheckStyle: "semicolon"}
	toy.SetRules(&lang.Rules{Keywords: []string{"let"}, Comments: []string{"--"}})
	lang.Register(toy)

	res, err := NewAnalyzer(nil, "").Analyze("a.apptoy", []byte("let x = 1 -- note"))
	require.NoError(t, err)
	assert.Same(t, toy, res.Language)
	assert.Equal(t, checker.StyleSemicolon, res.Style)
	assert.Equal(t, []types.Span{
		{Start: 0, End: 3, Category: types.Keyword},
		{Start: 3, End: 10, Category: types.Plain},
		{Start: 10, End: 17, Category: types.Comment},
	}, res.Spans[0])
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := NewAnalyzer(nil, "").AnalyzeFile(filepath.Join(t.TempDir(), "absent.kt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSamples(t *testing.T) {
	want := map[string]string{
		"HelloWorld.java": "Java",
		"sample.c":        "C",
		"sample.cpp":      "C++",
		"sample.kt":       "Kotlin",
		"sample.py":       "Python",
	}
	a := NewAnalyzer(nil, "")
	for file, language := range want {
		t.Run(file, func(t *testing.T) {
			res, err := a.AnalyzeFile(filepath.Join("testdata", "samples", file))
			require.NoError(t, err)
			assert.Equal(t, language, res.Language.Name)

			src := res.Lines()
			require.Len(t, res.Spans, len(src))
			for i, spans := range res.Spans {
				pos := 0
				for _, s := range spans {
					assert.Equal(t, pos, s.Start, "line %d", i+1)
					assert.Less(t, s.Start, s.End, "line %d", i+1)
					pos = s.End
				}
				assert.Equal(t, len(src[i]), pos, "line %d covered", i+1)
			}
			for i := 1; i < len(res.Errors); i++ {
				assert.LessOrEqual(t, res.Errors[i-1].Line, res.Errors[i].Line)
			}

			// The file header is a block comment.
			assert.Equal(t, types.Comment, res.Spans[0][0].Category)
		})
	}
}

func TestAnalyzeCache(t *testing.T) {
	a := NewAnalyzer(nil, "")
	a.EnableCache(time.Minute)

	first, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Spans, second.Spans)
	assert.False(t, first.Cached, "cached copies do not alter the stored result")

	changed, err := a.Analyze("Main.kt", []byte("val x = 2"))
	require.NoError(t, err)
	assert.False(t, changed.Cached)

	other, err := a.Analyze("Other.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.False(t, other.Cached, "the path is part of the key")

	a.EnableCache(0)
	again, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.False(t, again.Cached)
}

func TestAnalyzeCacheIsolatesCallers(t *testing.T) {
	a := NewAnalyzer(nil, "")
	a.EnableCache(time.Minute)

	first, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	require.NotEmpty(t, first.Errors)
	require.NotEmpty(t, first.Spans[0])
	wantKind := first.Errors[0].Kind
	wantCat := first.Spans[0][0].Category

	first.Errors[0].Kind = types.MissingSemicolon
	first.Spans[0][0].Category = types.Comment

	second, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, wantKind, second.Errors[0].Kind)
	assert.Equal(t, wantCat, second.Spans[0][0].Category)

	second.Errors[0].Kind = types.MissingColon
	third, err := a.Analyze("Main.kt", []byte("val x = 1"))
	require.NoError(t, err)
	assert.Equal(t, wantKind, third.Errors[0].Kind)
}

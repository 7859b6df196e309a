package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidelex/internal/types"
)

func TestBuiltinPalettes(t *testing.T) {
	light := Builtin(false)
	dark := Builtin(true)
	assert.False(t, light.IsDark)
	assert.True(t, dark.IsDark)

	fg, _, _ := light.StyleFor(types.Comment).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x008000), fg)
	fg, _, _ = dark.StyleFor(types.Comment).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x6a9955), fg)

	for _, cat := range []types.Category{types.Keyword, types.Type, types.Modifier} {
		_, _, attrs := dark.StyleFor(cat).Decompose()
		assert.NotZero(t, attrs&tcell.AttrBold, cat.String())
	}
	assert.Equal(t, light.GetStyle("Default"), light.StyleFor(types.Plain))
}

func TestGetStyleFallbacks(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorRed)
	kw := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{"Default": def, "keyword": kw}}

	assert.Equal(t, kw, th.GetStyle("keyword"))
	assert.Equal(t, kw, th.GetStyle("keyword.control"))
	assert.Equal(t, def, th.GetStyle("string"))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("anything"))
}

func TestParseTheme(t *testing.T) {
	data := []byte(`
name = "Mono"
is_dark = true

[styles.Default]
fg = "#c0c0c0"

[styles.keyword]
bold = true

[styles.string]
fg = "green"

[styles.broken]
fg = "#12"
`)
	th, err := ParseTheme(data)
	require.NoError(t, err)
	assert.Equal(t, "Mono", th.Name)
	assert.True(t, th.IsDark)

	fg, _, attrs := th.GetStyle("keyword").Decompose()
	assert.Equal(t, tcell.NewHexColor(0xc0c0c0), fg, "keyword inherits Default fg")
	assert.NotZero(t, attrs&tcell.AttrBold)

	fg, _, _ = th.GetStyle("string").Decompose()
	assert.Equal(t, tcell.ColorGreen, fg)

	_, ok := th.Styles["broken"]
	assert.False(t, ok, "unparsable styles are skipped")
}

func TestParseThemeInheritsBuiltin(t *testing.T) {
	th, err := ParseTheme([]byte(`
name = "Paper"

[styles.Default]
fg = "#111111"
bg = "#fdf6e3"

[styles.comment]
fg = "#93a1a1"
`))
	require.NoError(t, err)

	_, bg, _ := th.StyleFor(types.Comment).Decompose()
	assert.Equal(t, tcell.NewHexColor(0xfdf6e3), bg)

	fg, bg, attrs := th.StyleFor(types.Keyword).Decompose()
	wantFg, _, wantAttrs := Light.StyleFor(types.Keyword).Decompose()
	assert.Equal(t, wantFg, fg, "missing categories keep the built-in color")
	assert.Equal(t, wantAttrs, attrs)
	assert.Equal(t, tcell.NewHexColor(0xfdf6e3), bg, "over the theme's own background")

	assert.Equal(t, Light.GetStyle("StatusBarError"), th.GetStyle("StatusBarError"), "UI styles come from the built-in")

	dark, err := ParseTheme([]byte("is_dark = true\n"))
	require.NoError(t, err)
	assert.Equal(t, Dark.GetStyle("Default"), dark.GetStyle("Default"))
	assert.Equal(t, Dark.StyleFor(types.String), dark.StyleFor(types.String))
}

func TestParseColorString(t *testing.T) {
	c, err := parseColorString(" #FF0000 ")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), c)

	c, err = parseColorString("reset")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorReset, c)

	_, err = parseColorString("#zzzzzz")
	assert.Error(t, err)
	_, err = parseColorString("not-a-color")
	assert.Error(t, err)
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solar.toml"), []byte(`[styles.comment]
fg = "#586e75"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte(`name = `), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	mgr, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tidelex Dark", "Tidelex Light", "solar"}, mgr.ListThemes())

	solar, err := mgr.GetTheme("SOLAR")
	require.NoError(t, err)
	fg, _, _ := solar.StyleFor(types.Comment).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x586e75), fg)

	_, err = mgr.GetTheme("nope")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	sel, err := mgr.Select("", true)
	require.NoError(t, err)
	assert.Same(t, &Dark, sel)
	sel, err = mgr.Select("solar", true)
	require.NoError(t, err)
	assert.Same(t, solar, sel)
}

func TestManagerMissingDir(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Len(t, mgr.ListThemes(), 2)

	_, err = LoadThemeFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

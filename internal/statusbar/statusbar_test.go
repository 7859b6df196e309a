package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidelex/internal/theme"
	"github.com/bethropolis/tidelex/internal/types"
)

func TestDefaultText(t *testing.T) {
	sb := New(DefaultConfig())
	text, style := sb.Text()
	assert.Equal(t, "[No Name] -- Line: 1/0 -- no syntax errors", text)
	assert.Equal(t, "StatusBarOK", style)

	sb.SetFileInfo("Main.kt", "Kotlin")
	sb.SetCursorInfo(4, 10, "Line 5: missing ')'")
	sb.SetDiagnostics([]types.SyntaxError{
		{Kind: types.MissingBracket},
		{Kind: types.OptionalSemicolon},
		{Kind: types.OptionalSemicolon},
	})
	text, style = sb.Text()
	assert.Equal(t, "Main.kt [Kotlin] -- Line: 5/10 -- 1 error, 2 suggestions -- Line 5: missing ')'", text)
	assert.Equal(t, "StatusBarError", style)

	sb.SetDiagnostics([]types.SyntaxError{{Kind: types.OptionalSemicolon}})
	_, style = sb.Text()
	assert.Equal(t, "StatusBarAdvisory", style)
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	sb := New(Config{MessageTimeout: time.Second})
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("reloaded %s", "a.py")
	text, style := sb.Text()
	assert.Equal(t, "reloaded a.py", text)
	assert.Equal(t, "StatusBar", style)

	now = now.Add(2 * time.Second)
	text, _ = sb.Text()
	assert.Contains(t, text, "[No Name]")

	sb.SetTemporaryMessage("again")
	sb.ResetTemporaryMessage()
	text, _ = sb.Text()
	assert.NotEqual(t, "again", text)
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(20, 3)

	sb := New(DefaultConfig())
	sb.SetFileInfo("a.py", "")
	th := theme.Builtin(true)
	sb.Draw(screen, 20, 3, th)
	screen.Show()

	cells, width, _ := screen.GetContents()
	row := ""
	for x := 0; x < width; x++ {
		row += string(cells[2*width+x].Runes)
	}
	assert.Equal(t, "a.py -- Line: 1/0 --", row)
	assert.Equal(t, th.GetStyle("StatusBarOK"), cells[2*width].Style)
}

// Package render writes highlighted documents to plain writers: ANSI for
// terminals and a span listing for inspection.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"github.com/bethropolis/tidelex/internal/highlighter"
	"github.com/bethropolis/tidelex/internal/theme"
)

const sgrReset = "\x1b[0m"

// Write renders text in 24-bit color with one SGR sequence per style
// change. lines must come from highlighting the same text. A nil theme uses
// the light built-in.
func Write(w io.Writer, text string, lines highlighter.HighlightResult, th *theme.Theme) error {
	return WriteProfile(w, text, lines, th, termenv.TrueColor)
}

// WriteProfile is Write with colors reduced to what profile supports.
// termenv.Ascii writes the text without escape sequences.
func WriteProfile(w io.Writer, text string, lines highlighter.HighlightResult, th *theme.Theme, profile termenv.Profile) error {
	if th == nil {
		th = theme.Builtin(false)
	}
	bw := bufio.NewWriter(w)
	source := strings.Split(text, "\n")

	for i, line := range source {
		if i > 0 {
			bw.WriteByte('\n')
		}
		spans := lines.Line(i)
		if len(spans) == 0 || profile == termenv.Ascii {
			bw.WriteString(line)
			continue
		}
		prev := ""
		for _, span := range spans {
			seq := SGRProfile(th.StyleFor(span.Category), profile)
			if seq != prev {
				bw.WriteString(seq)
				prev = seq
			}
			bw.WriteString(span.Text(line))
		}
		bw.WriteString(sgrReset)
	}
	return bw.Flush()
}

// SGR returns the 24-bit escape sequence selecting style. Colors without an
// RGB value (reset, default) are left to the terminal.
func SGR(style tcell.Style) string {
	return SGRProfile(style, termenv.TrueColor)
}

// SGRProfile returns the escape sequence selecting style under profile.
func SGRProfile(style tcell.Style, profile termenv.Profile) string {
	fg, bg, attrs := style.Decompose()

	var sb strings.Builder
	sb.WriteString("\x1b[0")
	for _, a := range sgrAttrs {
		if attrs&a.mask != 0 {
			sb.WriteString(a.code)
		}
	}
	writeColor(&sb, profile, fg, false)
	writeColor(&sb, profile, bg, true)
	sb.WriteByte('m')
	return sb.String()
}

var sgrAttrs = []struct {
	mask tcell.AttrMask
	code string
}{
	{tcell.AttrBold, ";1"},
	{tcell.AttrDim, ";2"},
	{tcell.AttrItalic, ";3"},
	{tcell.AttrUnderline, ";4"},
	{tcell.AttrBlink, ";5"},
	{tcell.AttrReverse, ";7"},
	{tcell.AttrStrikeThrough, ";9"},
}

// writeColor appends the color parameters for c. TrueColor is written from
// the exact RGB triple; termenv's float round trip truncates some channels.
func writeColor(sb *strings.Builder, profile termenv.Profile, c tcell.Color, bg bool) {
	if c.Hex() < 0 {
		return
	}
	if profile != termenv.TrueColor {
		converted := profile.Color(fmt.Sprintf("#%06x", c.Hex()))
		if converted == nil {
			return
		}
		if seq := converted.Sequence(bg); seq != "" {
			sb.WriteString(";" + seq)
		}
		return
	}
	plane := "38"
	if bg {
		plane = "48"
	}
	r, g, b := c.RGB()
	sb.WriteString(";" + plane + ";2;")
	sb.WriteString(strconv.Itoa(int(r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b)))
}

// ParseProfile maps a color setting to a termenv profile. "auto" asks the
// terminal behind w.
func ParseProfile(name string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "256":
		return termenv.ANSI256, nil
	case "16", "ansi":
		return termenv.ANSI, nil
	case "none", "ascii":
		return termenv.Ascii, nil
	case "auto":
		return termenv.NewOutput(w).ColorProfile(), nil
	}
	return termenv.TrueColor, fmt.Errorf("unknown color profile %q", name)
}

// Dump lists every span as `line:start-end category "text"`, lines 1-based.
func Dump(w io.Writer, text string, lines highlighter.HighlightResult) error {
	bw := bufio.NewWriter(w)
	source := strings.Split(text, "\n")
	for i, spans := range lines {
		line := ""
		if i < len(source) {
			line = source[i]
		}
		for _, span := range spans {
			bw.WriteString(strconv.Itoa(i + 1))
			bw.WriteByte(':')
			bw.WriteString(strconv.Itoa(span.Start))
			bw.WriteByte('-')
			bw.WriteString(strconv.Itoa(span.End))
			bw.WriteByte(' ')
			bw.WriteString(span.Category.String())
			bw.WriteByte(' ')
			bw.WriteString(strconv.Quote(span.Text(line)))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

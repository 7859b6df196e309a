// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidelex/internal/highlighter"
	"github.com/bethropolis/tidelex/internal/theme"
	"github.com/bethropolis/tidelex/internal/types"
	"github.com/bethropolis/tidelex/internal/utils"
)

const tabWidth = 4

// Document is what the viewer displays.
type Document struct {
	Path     string
	Language string
	Lines    []string
	Spans    highlighter.HighlightResult
	Errors   []types.SyntaxError
}

// Viewport is the scroll state: first visible line, horizontal offset in
// cells, and the cursor line.
type Viewport struct {
	Top    int
	Left   int
	Cursor int
}

// gutterWidth returns the width of the line-number column including its
// padding, or 0 when the screen is too narrow.
func gutterWidth(lineCount, width int) (int, int) {
	if lineCount == 0 {
		lineCount = 1
	} // Avoid Log10(0)
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutter := maxDigits + 1 // Space between number and text
	if gutter >= width {
		return 0, maxDigits
	}
	return gutter, maxDigits
}

// lineMark summarizes the diagnostics of one line.
type lineMark struct {
	blocking bool
	column   int // 0-based rune column of the first diagnostic
}

// diagnosticLines marks 0-based lines carrying diagnostics.
func diagnosticLines(errs []types.SyntaxError) map[int]lineMark {
	marks := make(map[int]lineMark, len(errs))
	for _, e := range errs {
		line := e.Line - 1
		mark, seen := marks[line]
		if !seen {
			mark.column = e.Column - 1
		}
		mark.blocking = mark.blocking || !e.Kind.Advisory()
		marks[line] = mark
	}
	return marks
}

// DrawDocument draws the visible lines of doc above the status bar row.
func DrawDocument(screen tcell.Screen, doc *Document, vp Viewport, activeTheme *theme.Theme) {
	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	errorNumberStyle := activeTheme.GetStyle("LineNumberError")
	advisoryNumberStyle := activeTheme.GetStyle("LineNumberAdvisory")

	width, height := screen.Size()
	viewHeight := height - 1 // status bar
	if viewHeight <= 0 || width <= 0 {
		return
	}

	gutter, maxDigits := gutterWidth(len(doc.Lines), width)
	textAreaWidth := width - gutter
	marks := diagnosticLines(doc.Errors)

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + vp.Top

		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx < 0 || lineIdx >= len(doc.Lines) {
			continue
		}

		line := doc.Lines[lineIdx]
		markByte := -1
		mark, marked := marks[lineIdx]
		if marked {
			markByte = utils.RuneIndexToByteOffset(line, mark.column)
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if marked {
				numStyle = advisoryNumberStyle
				if mark.blocking {
					numStyle = errorNumberStyle
				}
			}
			if lineIdx == vp.Cursor {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		drawLine(screen, screenY, line, doc.Spans.Line(lineIdx), markByte, vp.Left, gutter, textAreaWidth, activeTheme)
	}
}

// drawLine draws one line's grapheme clusters in their span styles. The
// cluster starting at markByte, if any, is underlined.
func drawLine(screen tcell.Screen, y int, line string, spans []types.Span, markByte, viewX, gutter, textAreaWidth int, activeTheme *theme.Theme) {
	width := gutter + textAreaWidth
	gr := uniseg.NewGraphemes(line)
	spanIdx := 0
	currentVisualX := 0

	for gr.Next() {
		byteStart, _ := gr.Positions()
		for spanIdx < len(spans) && spans[spanIdx].End <= byteStart {
			spanIdx++
		}
		style := activeTheme.GetStyle("Default")
		if spanIdx < len(spans) && spans[spanIdx].Contains(byteStart) {
			style = activeTheme.StyleFor(spans[spanIdx].Category)
		}
		if byteStart == markByte {
			style = style.Underline(true)
		}

		clusterRunes := gr.Runes()
		clusterWidth := gr.Width()
		if clusterRunes[0] == '\t' {
			clusterWidth = tabWidth - (currentVisualX % tabWidth)
		}

		screenX := currentVisualX - viewX + gutter
		if currentVisualX+clusterWidth > viewX && screenX >= gutter && screenX < width {
			if clusterRunes[0] == '\t' {
				for i := 0; i < clusterWidth && screenX+i < width; i++ {
					screen.SetContent(screenX+i, y, ' ', nil, style)
				}
			} else {
				screen.SetContent(screenX, y, clusterRunes[0], clusterRunes[1:], style)
				for cw := 1; cw < clusterWidth && screenX+cw < width; cw++ {
					screen.SetContent(screenX+cw, y, ' ', nil, style)
				}
			}
		}

		currentVisualX += clusterWidth
		if currentVisualX >= viewX+textAreaWidth {
			break
		}
	}
}

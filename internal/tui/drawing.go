// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/theme"
	"github.com/bethropolis/medit/internal/types"
)

const lineNumberPadding = 1

// gutterWidth is the width of the line number column, or 0 when the screen
// is too narrow for it.
func gutterWidth(lineCount, width int) int {
	digits := len(fmt.Sprint(max(1, lineCount)))
	w := digits + lineNumberPadding
	if w >= width {
		return 0
	}
	return w
}

// regionPainter answers per rune offset whether it is selected or carries a
// secondary caret.
type regionPainter struct {
	selected []types.Region // non-empty regions
	carets   map[int]bool   // active ends, primary excluded
}

func newRegionPainter(regions []types.Region) regionPainter {
	p := regionPainter{carets: make(map[int]bool)}
	for i, r := range regions {
		if !r.Empty() {
			p.selected = append(p.selected, r)
		}
		if i < len(regions)-1 {
			p.carets[r.Active] = true
		}
	}
	return p
}

func (p regionPainter) isSelected(offset int) bool {
	for _, r := range p.selected {
		if offset >= r.Begin() && offset < r.End() {
			return true
		}
	}
	return false
}

// DrawView draws the visible part of v above the status bar.
func DrawView(screen tcell.Screen, v *core.View, activeTheme *theme.Theme) {
	if activeTheme == nil {
		activeTheme = theme.Dark()
	}
	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	selectionStyle := activeTheme.GetStyle("Selection")
	caretStyle := activeTheme.GetStyle("Cursor")

	width, height := screen.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	buf := v.Buffer()
	lines := buf.Lines()
	viewY, viewX := v.Viewport()
	gutter := gutterWidth(len(lines), width)
	textWidth := width - gutter
	primaryLine := v.PrimaryPosition().Line
	painter := newRegionPainter(v.Selection().Regions())

	tabWidth := v.TabWidth
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY
		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			style := lineNumberStyle
			if lineIdx == primaryLine {
				style = style.Bold(true)
			}
			num := fmt.Sprintf("%*d", gutter-lineNumberPadding, lineIdx+1)
			for i, r := range num {
				screen.SetContent(i, screenY, r, nil, style)
			}
		}

		lineStart := buf.PositionToOffset(types.Position{Line: lineIdx})
		syntax := v.SyntaxHighlightsForLine(lineIdx)

		visualX := 0
		runeIdx := 0
		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		for gr.Next() {
			cluster := gr.Runes()
			clusterWidth := gr.Width()
			if cluster[0] == '\t' {
				clusterWidth = tabWidth - visualX%tabWidth
			}
			offset := lineStart + runeIdx

			style := defaultStyle
			for _, s := range syntax {
				if runeIdx >= s.StartCol && runeIdx < s.EndCol {
					style = activeTheme.GetStyle(s.StyleName)
					break
				}
			}
			if painter.isSelected(offset) {
				style = selectionStyle
			}
			if painter.carets[offset] {
				style = caretStyle
			}

			screenX := visualX - viewX + gutter
			if visualX >= viewX && screenX < width {
				if cluster[0] == '\t' {
					for i := 0; i < clusterWidth && screenX+i < width; i++ {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else {
					screen.SetContent(screenX, screenY, cluster[0], cluster[1:], style)
					for cw := 1; cw < clusterWidth && screenX+cw < width; cw++ {
						screen.SetContent(screenX+cw, screenY, ' ', nil, style)
					}
				}
			}

			visualX += clusterWidth
			runeIdx += len(cluster)
			if visualX >= viewX+textWidth {
				break
			}
		}

		// A secondary caret at the end of the line sits on the cell after the text.
		if painter.carets[lineStart+runeIdx] {
			screenX := visualX - viewX + gutter
			if visualX >= viewX && screenX < width {
				screen.SetContent(screenX, screenY, ' ', nil, caretStyle)
			}
		}
	}
}

// DrawCursor places the terminal cursor on the primary region's active end.
func DrawCursor(screen tcell.Screen, v *core.View) {
	width, height := screen.Size()
	viewHeight := height - config.StatusBarHeight
	buf := v.Buffer()
	gutter := gutterWidth(buf.LineCount(), width)
	viewY, viewX := v.Viewport()

	pos := v.PrimaryPosition()
	visualCol := 0
	if line, err := buf.Line(pos.Line); err == nil {
		visualCol = core.VisualColumn(line, pos.Col, v.TabWidth)
	}

	screenX := visualCol - viewX + gutter
	screenY := pos.Line - viewY
	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(screenX, screenY)
}

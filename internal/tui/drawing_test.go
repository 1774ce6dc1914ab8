package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/theme"
	"github.com/bethropolis/medit/internal/types"
)

func setup(t *testing.T, w, h int, text string) (tcell.SimulationScreen, *core.View) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	_, err := NewWithScreen(s)
	require.NoError(t, err)
	s.SetSize(w, h)
	t.Cleanup(s.Fini)

	ws := core.NewWorkspace(nil, 0, 4)
	v, err := ws.Open("")
	require.NoError(t, err)
	v.SetText(text)
	v.SetViewSize(w, h)
	return s, v
}

func cell(s tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, w, _ := s.GetContents()
	return cells[y*w+x]
}

func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteString(string(cells[y*w+x].Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDrawViewText(t *testing.T) {
	s, v := setup(t, 20, 4, "one\n\ttwo")
	DrawView(s, v, theme.Dark())
	s.Show()

	assert.Equal(t, "1 one", row(s, 0))
	assert.Equal(t, "2     two", row(s, 1))
	assert.Equal(t, "", row(s, 2))
}

func TestDrawViewSelectionsAndCarets(t *testing.T) {
	th := theme.Dark()
	s, v := setup(t, 20, 3, "this is a test")
	v.Selection().Set([]types.Region{{Anchor: 0, Active: 4}, types.Cursor(8), {Anchor: 14, Active: 10}})

	DrawView(s, v, th)
	s.Show()

	const gutter = 2
	sel := th.GetStyle("Selection")
	caret := th.GetStyle("Cursor")
	def := th.GetStyle("Default")

	for x := 0; x < 4; x++ {
		assert.Equal(t, sel, cell(s, gutter+x, 0).Style, "col %d", x)
	}
	assert.Equal(t, caret, cell(s, gutter+4, 0).Style, "active end of the first region")
	assert.Equal(t, def, cell(s, gutter+5, 0).Style)
	assert.Equal(t, caret, cell(s, gutter+8, 0).Style, "empty secondary region")
	for x := 10; x < 14; x++ {
		assert.Equal(t, sel, cell(s, gutter+x, 0).Style, "col %d", x)
	}
}

func TestDrawViewCaretAtLineEnd(t *testing.T) {
	th := theme.Dark()
	s, v := setup(t, 20, 3, "ab\ncd")
	v.Selection().Set([]types.Region{types.Cursor(2), types.Cursor(5)})

	DrawView(s, v, th)
	s.Show()
	assert.Equal(t, th.GetStyle("Cursor"), cell(s, 2+2, 0).Style)
}

func TestDrawCursorFollowsPrimary(t *testing.T) {
	s, v := setup(t, 20, 4, "ab\n\tcd")
	v.Selection().Set([]types.Region{types.Cursor(0), types.Cursor(5)})

	DrawCursor(s, v)
	s.Show()
	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2+4+1, x)
	assert.Equal(t, 1, y)
}

package core

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/types"
)

// transform maps every region through fn and stores the result as one
// selection change. Colliding regions merge.
func (v *View) transform(fn func(r types.Region) types.Region) {
	regions := v.sel.Regions()
	for i, r := range regions {
		regions[i] = fn(r)
	}
	v.sel.Set(regions)
}

func (v *View) clampOffset(offset int) int {
	return max(0, min(offset, v.buffer.Len()))
}

// MoveHorizontal moves every region's active end by dir runes. Without
// extend, a non-empty region collapses to the side it moves towards.
func (v *View) MoveHorizontal(dir int, extend bool) {
	v.transform(func(r types.Region) types.Region {
		if !extend && !r.Empty() {
			if dir < 0 {
				return types.Cursor(r.Begin())
			}
			return types.Cursor(r.End())
		}
		active := v.clampOffset(r.Active + dir)
		if extend {
			return types.Region{Anchor: r.Anchor, Active: active}
		}
		return types.Cursor(active)
	})
}

// MoveVertical moves every region's active end by deltaLines, clamping the
// column to the target line.
func (v *View) MoveVertical(deltaLines int, extend bool) {
	v.transform(func(r types.Region) types.Region {
		active := v.verticalOffset(r.Active, deltaLines)
		if extend {
			return types.Region{Anchor: r.Anchor, Active: active}
		}
		return types.Cursor(active)
	})
}

func (v *View) verticalOffset(offset, deltaLines int) int {
	pos := v.buffer.OffsetToPosition(offset)
	pos.Line = max(0, min(pos.Line+deltaLines, v.buffer.LineCount()-1))
	return v.buffer.PositionToOffset(pos)
}

// Home moves every active end to the start of its line.
func (v *View) Home(extend bool) {
	v.lineEdge(extend, func(pos types.Position) types.Position {
		pos.Col = 0
		return pos
	})
}

// End moves every active end past the last rune of its line.
func (v *View) End(extend bool) {
	v.lineEdge(extend, func(pos types.Position) types.Position {
		line, err := v.buffer.Line(pos.Line)
		if err != nil {
			logger.Debugf("End: %v", err)
			return pos
		}
		pos.Col = utf8.RuneCount(line)
		return pos
	})
}

func (v *View) lineEdge(extend bool, move func(types.Position) types.Position) {
	v.transform(func(r types.Region) types.Region {
		active := v.buffer.PositionToOffset(move(v.buffer.OffsetToPosition(r.Active)))
		if extend {
			return types.Region{Anchor: r.Anchor, Active: active}
		}
		return types.Cursor(active)
	})
}

// PageMove moves all carets by one view height per page.
func (v *View) PageMove(deltaPages int) {
	if v.viewHeight <= 0 {
		return
	}
	v.MoveVertical(v.viewHeight*deltaPages, false)
}

// AddCursor adds an empty region deltaLines above or below the primary
// region's active end. It reports false at the document edges.
func (v *View) AddCursor(deltaLines int) bool {
	primary, ok := v.sel.Last()
	if !ok {
		return false
	}
	pos := v.buffer.OffsetToPosition(primary.Active)
	target := pos.Line + deltaLines
	if target < 0 || target >= v.buffer.LineCount() {
		return false
	}
	return v.sel.Add(types.Cursor(v.buffer.PositionToOffset(types.Position{Line: target, Col: pos.Col})))
}

// SelectAll replaces the selection with one region over the document.
func (v *View) SelectAll() {
	v.sel.Set([]types.Region{{Anchor: 0, Active: v.buffer.Len()}})
}

// CollapseToPrimary drops every region except a cursor at the primary's active end.
func (v *View) CollapseToPrimary() bool {
	primary, ok := v.sel.Last()
	if !ok {
		return false
	}
	return v.sel.Set([]types.Region{types.Cursor(primary.Active)})
}

// --- Viewport ---

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (v *View) SetViewSize(width, height int) {
	v.viewWidth = width
	v.viewHeight = max(0, height-config.StatusBarHeight)
	v.ScrollToPrimary()
}

func (v *View) Viewport() (int, int) {
	return v.ViewportY, v.ViewportX
}

// ScrollToPrimary adjusts the viewport so the primary caret stays visible,
// honouring ScrollOff.
func (v *View) ScrollToPrimary() {
	if v.viewHeight <= 0 || v.viewWidth <= 0 {
		return
	}
	cursor := v.PrimaryPosition()

	scrollOff := v.ScrollOff
	if scrollOff*2 >= v.viewHeight {
		scrollOff = (v.viewHeight - 1) / 2
	}

	if cursor.Line < v.ViewportY+scrollOff {
		v.ViewportY = cursor.Line - scrollOff
	} else if cursor.Line >= v.ViewportY+v.viewHeight-scrollOff {
		v.ViewportY = cursor.Line - v.viewHeight + 1 + scrollOff
	}

	visualCol := 0
	if line, err := v.buffer.Line(cursor.Line); err == nil {
		visualCol = VisualColumn(line, cursor.Col, v.TabWidth)
	}
	if visualCol < v.ViewportX {
		v.ViewportX = visualCol
	} else if visualCol >= v.ViewportX+v.viewWidth {
		v.ViewportX = visualCol - v.viewWidth + 1
	}

	v.ViewportY = max(0, v.ViewportY)
	v.ViewportX = max(0, v.ViewportX)
}

// VisualColumn computes the screen column of a rune index within a line,
// accounting for wide grapheme clusters and tab stops.
func VisualColumn(line []byte, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}
	visual := 0
	runes := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && runes < runeIndex {
		cluster := gr.Runes()
		if cluster[0] == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += gr.Width()
		}
		runes += len(cluster)
	}
	return visual
}

package app

import (
	"github.com/bethropolis/medit/internal/tui"
	"github.com/bethropolis/medit/internal/types"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	screen := a.tuiManager.Screen()
	width, height := a.tuiManager.Size()
	activeTheme := a.themeManager.Current()

	a.tuiManager.Clear()
	if v := a.workspace.Active(); v != nil {
		v.SetViewSize(width, height)
		tui.DrawView(screen, v, activeTheme)
		tui.DrawCursor(screen, v)
	} else {
		screen.HideCursor()
	}
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetEditorMode(a.modeHandler.CurrentMode().String())
	v := a.workspace.Active()
	if v == nil {
		a.statusBar.SetFileInfo("", false)
		a.statusBar.SetSelectionInfo(types.Position{}, 0)
		return
	}
	a.statusBar.SetFileInfo(v.FilePath(), v.IsModified())
	a.statusBar.SetSelectionInfo(v.PrimaryPosition(), v.Selection().Len())
}

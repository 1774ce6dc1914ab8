package modehandler

import (
	"github.com/bethropolis/medit/internal/input"
	"github.com/bethropolis/medit/internal/logger"
)

// handleActionNormal runs an action against the active view.
func (mh *ModeHandler) handleActionNormal(ae input.ActionEvent) bool {
	processed := true

	switch ae.Action {
	case input.ActionEnterCommandMode:
		mh.setMode(ModeCommand)
	case input.ActionQuit:
		mh.RequestQuit(false)
		return true
	case input.ActionForceQuit:
		mh.RequestQuit(true)
		return false
	case input.ActionRunCommand:
		mh.runCommand(ae.Command, ae.Args)
	case input.ActionNextView:
		mh.workspace.Cycle(1)
	case input.ActionPrevView:
		mh.workspace.Cycle(-1)
	case input.ActionUnknown:
		processed = false
	default:
		processed = mh.handleViewAction(ae)
	}

	if processed {
		mh.forceQuitPending = false
	}
	return processed
}

// handleViewAction runs the actions that need an active view.
func (mh *ModeHandler) handleViewAction(ae input.ActionEvent) bool {
	v := mh.workspace.Active()
	if v == nil {
		return false
	}

	var err error
	switch ae.Action {
	case input.ActionSave:
		if err = v.Save(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
			return true
		}
		mh.statusBar.SetTemporaryMessage("Buffer saved to %s", v.FilePath())

	case input.ActionMoveUp:
		v.MoveVertical(-1, ae.Extend)
	case input.ActionMoveDown:
		v.MoveVertical(1, ae.Extend)
	case input.ActionMoveLeft:
		v.MoveHorizontal(-1, ae.Extend)
	case input.ActionMoveRight:
		v.MoveHorizontal(1, ae.Extend)
	case input.ActionMovePageUp:
		v.PageMove(-1)
	case input.ActionMovePageDown:
		v.PageMove(1)
	case input.ActionMoveHome:
		v.Home(ae.Extend)
	case input.ActionMoveEnd:
		v.End(ae.Extend)

	case input.ActionAddCursorAbove:
		v.AddCursor(-1)
	case input.ActionAddCursorBelow:
		v.AddCursor(1)
	case input.ActionSelectAll:
		v.SelectAll()
	case input.ActionCollapseSelection:
		v.CollapseToPrimary()

	case input.ActionInsertRune:
		err = v.InsertText(string(ae.Rune))
	case input.ActionInsertNewLine:
		err = v.InsertText("\n")
	case input.ActionInsertTab:
		err = v.InsertText("\t")
	case input.ActionDeleteCharBackward:
		err = v.DeleteBackward()
	case input.ActionDeleteCharForward:
		err = v.DeleteForward()

	default:
		return false
	}

	if err != nil {
		logger.Errorf("view %d: action %d failed: %v", v.ID(), ae.Action, err)
		mh.statusBar.SetTemporaryMessage("Edit failed: %v", err)
	}
	return true
}

// internal/input/action.go
package input

// Action represents an operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Selection ---
	ActionAddCursorAbove
	ActionAddCursorBelow
	ActionSelectAll
	ActionCollapseSelection

	// --- Text Manipulation ---
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// --- Views ---
	ActionNextView
	ActionPrevView

	// --- Editor Mode ---
	ActionEnterCommandMode
	ActionRunCommand // Runs ActionEvent.Command
)

// IsMovement reports whether a, combined with Shift, extends the selection.
func (a Action) IsMovement() bool {
	return a >= ActionMoveUp && a <= ActionMoveEnd
}

// ActionEvent represents a decoded key press.
type ActionEvent struct {
	Action  Action
	Rune    rune   // ActionInsertRune
	Extend  bool   // Shift was held on a movement
	Command string // ActionRunCommand
	Args    []string
}

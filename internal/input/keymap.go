// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Binding is a key with its significant modifiers.
type Binding struct {
	Key tcell.Key
	Mod tcell.ModMask
}

// Keymap maps bindings to editor actions.
type Keymap map[Binding]ActionEvent

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(Keymap)}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	simple := map[tcell.Key]Action{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyPgUp:       ActionMovePageUp,
		tcell.KeyPgDn:       ActionMovePageDown,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyTab:        ActionInsertTab,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward,
		tcell.KeyDelete:     ActionDeleteCharForward,
		tcell.KeyEscape:     ActionCollapseSelection,

		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlW: ActionForceQuit,
		tcell.KeyCtrlA: ActionSelectAll,
		tcell.KeyCtrlP: ActionEnterCommandMode,
		tcell.KeyCtrlN: ActionNextView,
		tcell.KeyCtrlB: ActionPrevView,
	}
	for key, action := range simple {
		p.keymap[Binding{Key: key}] = ActionEvent{Action: action}
	}

	p.keymap[Binding{Key: tcell.KeyUp, Mod: tcell.ModAlt}] = ActionEvent{Action: ActionAddCursorAbove}
	p.keymap[Binding{Key: tcell.KeyDown, Mod: tcell.ModAlt}] = ActionEvent{Action: ActionAddCursorBelow}

	commands := map[tcell.Key]string{
		tcell.KeyCtrlL: "jump_to_last_region",
		tcell.KeyCtrlU: "add_last_selection",
		tcell.KeyCtrlK: "split_selection",
		tcell.KeyCtrlE: "strip_selection",
		tcell.KeyCtrlR: "normalize_region_ends",
		tcell.KeyCtrlC: "copy_selections",
		tcell.KeyCtrlV: "paste",
	}
	for key, name := range commands {
		p.BindCommand(Binding{Key: key}, name)
	}
}

// Bind overrides the action for b.
func (p *InputProcessor) Bind(b Binding, ev ActionEvent) {
	p.keymap[b] = ev
}

// BindCommand binds b to a registered command.
func (p *InputProcessor) BindCommand(b Binding, name string, args ...string) {
	p.Bind(b, ActionEvent{Action: ActionRunCommand, Command: name, Args: args})
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if key == tcell.KeyRune {
		if mod&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	// Ctrl+letter keys already imply the modifier.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	extend := mod&tcell.ModShift != 0
	mod &^= tcell.ModShift

	action, ok := p.keymap[Binding{Key: key, Mod: mod}]
	if !ok {
		return ActionEvent{Action: ActionUnknown}
	}
	action.Extend = extend && action.Action.IsMovement()
	return action
}

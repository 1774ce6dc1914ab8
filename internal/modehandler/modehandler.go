// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sajari/fuzzy"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/input"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// ModeHandler routes key events to the active view or the command line and
// owns the command registry.
type ModeHandler struct {
	workspace      *core.Workspace
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	suggester        *fuzzy.Model
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Workspace      *core.Workspace
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // closed once on quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Workspace == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	suggester := fuzzy.NewModel()
	suggester.SetThreshold(1)
	suggester.SetDepth(2)
	return &ModeHandler{
		workspace:      cfg.Workspace,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		suggester:      suggester,
	}
}

// HandleKeyEvent processes one key press. It reports whether a redraw is needed.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Warnf("Unknown input mode: %v", mh.currentMode)
		return false
	}
}

func (mh *ModeHandler) setMode(mode InputMode) {
	if mh.currentMode == mode {
		return
	}
	mh.currentMode = mode
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetCommandLine("", mode == ModeCommand)
	mh.statusBar.SetEditorMode(mode.String())
	mh.eventManager.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: mode.String()})
	logger.DebugTagf("mode", "entered %s mode", mode)
}

// RequestQuit closes the quit signal. Without force it refuses once while
// any view has unsaved changes.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if !force && !mh.forceQuitPending && mh.anyModified() {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Quit again or use Ctrl+W to force quit.")
		mh.forceQuitPending = true
		return false
	}
	if !mh.quitting {
		mh.quitting = true
		close(mh.quitSignal)
	}
	return true
}

func (mh *ModeHandler) anyModified() bool {
	for _, v := range mh.workspace.Views() {
		if v.IsModified() {
			return true
		}
	}
	return false
}

func (mh *ModeHandler) CurrentMode() InputMode {
	return mh.currentMode
}

// CommandBuffer returns the command line being typed.
func (mh *ModeHandler) CommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

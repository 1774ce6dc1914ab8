// internal/plugin/plugin.go
package plugin

import (
	"errors"

	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/selection"
	"github.com/bethropolis/medit/internal/types"
)

// ErrDuplicateCommand is returned when a command name is already taken.
var ErrDuplicateCommand = errors.New("command already registered")

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// View is the part of an editor surface that plugins may touch.
type View interface {
	ID() types.SurfaceID
	// Selection is live: mutating it dispatches event.TypeSelectionModified.
	Selection() *selection.Selection
	Text(r types.Region) string
	Runes() []rune
	Len() int
	FilePath() string
	IsModified() bool
}

// EditorAPI defines the methods plugins can use to interact with the editor core.
type EditorAPI interface {
	// --- Views ---
	ActiveView() (View, bool)
	GetView(id types.SurfaceID) (View, bool)
	Views() []View
	SaveView(id types.SurfaceID) error

	// Schedule runs fn on the editor's event goroutine. Plugins with their
	// own goroutines must go through it before touching a view.
	Schedule(fn func())

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(plugin, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins register
	// commands and subscribe to events here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}

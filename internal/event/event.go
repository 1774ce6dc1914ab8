// internal/event/event.go
package event

import (
	"github.com/bethropolis/medit/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified    // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded      // Fired after a buffer is successfully loaded
	TypeBufferSaved       // Fired after a buffer is successfully saved
	TypeSelectionModified // Fired after every mutation that changed a view's regions
	TypeModeChanged

	// View lifecycle
	TypeViewOpened
	TypeViewClosed
	TypeViewActivated

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:           "unknown",
	TypeBufferModified:    "buffer-modified",
	TypeBufferLoaded:      "buffer-loaded",
	TypeBufferSaved:       "buffer-saved",
	TypeSelectionModified: "selection-modified",
	TypeModeChanged:       "mode-changed",
	TypeViewOpened:        "view-opened",
	TypeViewClosed:        "view-closed",
	TypeViewActivated:     "view-activated",
	TypeAppReady:          "app-ready",
	TypeAppQuit:           "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// --- Specific Event Data Structures ---

// BufferModifiedData carries the edit applied to a view's buffer.
type BufferModifiedData struct {
	Surface types.SurfaceID
	Edit    types.EditInfo
}

type BufferLoadedData struct {
	Surface  types.SurfaceID
	FilePath string
}

type BufferSavedData struct {
	Surface  types.SurfaceID
	FilePath string
}

// SelectionModifiedData is a snapshot of a view's regions taken right after
// the mutation.
type SelectionModifiedData struct {
	Surface types.SurfaceID
	Regions []types.Region
}

type ModeChangedData struct {
	Mode string
}

// ViewData identifies the view an event refers to.
type ViewData struct {
	Surface types.SurfaceID
}

type AppQuitData struct{}

type AppReadyData struct{}

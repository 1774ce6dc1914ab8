package app

import (
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/logger"
)

// subscribeEvents wires the app's own reactions to editor events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeViewOpened, a.handleViewOpened)
	a.eventManager.Subscribe(event.TypeViewClosed, a.handleViewClosed)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForHighlighting)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForHighlighting)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
}

// handleViewOpened sizes a new view to the screen.
func (a *App) handleViewOpened(e event.Event) bool {
	data, ok := e.Data.(event.ViewData)
	if !ok {
		return false
	}
	if v, ok := a.workspace.Get(data.Surface); ok {
		v.SetViewSize(a.tuiManager.Size())
	}
	return false
}

func (a *App) handleViewClosed(e event.Event) bool {
	if data, ok := e.Data.(event.ViewData); ok {
		a.highlightingManager.Forget(data.Surface)
	}
	return false
}

func (a *App) handleBufferModifiedForHighlighting(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("App: Received BufferModified event with unexpected data type: %T", e.Data)
		return false
	}
	if v, ok := a.workspace.Get(data.Surface); ok {
		a.highlightingManager.AccumulateEdit(v, data.Edit)
	}
	return false
}

func (a *App) handleBufferLoadedForHighlighting(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		if v, ok := a.workspace.Get(data.Surface); ok {
			a.highlightingManager.Trigger(v)
		}
	}
	return false
}

// handleBufferSavedForStatus reparses too: a save under a new name can
// change the language.
func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	data, ok := e.Data.(event.BufferSavedData)
	if !ok {
		return false
	}
	logger.DebugTagf("app", "view %d saved to '%s'", data.Surface, data.FilePath)
	if v, ok := a.workspace.Get(data.Surface); ok {
		a.highlightingManager.Trigger(v)
	}
	return false
}

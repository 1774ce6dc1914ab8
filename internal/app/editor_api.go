// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Views ---

func (api *appEditorAPI) ActiveView() (plugin.View, bool) {
	v := api.app.workspace.Active()
	if v == nil {
		return nil, false
	}
	return v, true
}

func (api *appEditorAPI) GetView(id types.SurfaceID) (plugin.View, bool) {
	v, ok := api.app.workspace.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

func (api *appEditorAPI) Views() []plugin.View {
	views := api.app.workspace.Views()
	out := make([]plugin.View, 0, len(views))
	for _, v := range views {
		out = append(out, v)
	}
	return out
}

func (api *appEditorAPI) SaveView(id types.SurfaceID) error {
	v, ok := api.app.workspace.Get(id)
	if !ok {
		return fmt.Errorf("save view %d: %w", id, core.ErrNoView)
	}
	if err := v.Save(); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) Schedule(fn func()) {
	api.app.Schedule(fn)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

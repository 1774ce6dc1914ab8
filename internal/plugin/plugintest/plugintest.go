// Package plugintest provides an in-memory EditorAPI for exercising plugins
// without a terminal.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/types"
)

// API implements plugin.EditorAPI over a real workspace and event bus.
type API struct {
	Events    *event.Manager
	Workspace *core.Workspace
	Commands  map[string]plugin.CommandFunc
	Config    map[string]map[string]interface{}
	Status    []string
	Scheduled int

	mu sync.Mutex
}

var _ plugin.EditorAPI = (*API)(nil)

// New creates an API with no open views.
func New() *API {
	mgr := event.NewManager()
	return &API{
		Events:    mgr,
		Workspace: core.NewWorkspace(mgr, 0, 4),
		Commands:  make(map[string]plugin.CommandFunc),
		Config:    make(map[string]map[string]interface{}),
	}
}

// OpenText opens a scratch view holding text and makes it active.
func (a *API) OpenText(text string) *core.View {
	v, err := a.Workspace.Open("")
	if err != nil {
		panic(err)
	}
	v.SetText(text)
	return v
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	fn, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return fn(args)
}

// SetConfig stores a value returned by GetPluginConfigValue.
func (a *API) SetConfig(pluginName, key string, value interface{}) {
	if a.Config[pluginName] == nil {
		a.Config[pluginName] = make(map[string]interface{})
	}
	a.Config[pluginName][key] = value
}

// LastStatus returns the most recent status message, or "".
func (a *API) LastStatus() string {
	if len(a.Status) == 0 {
		return ""
	}
	return a.Status[len(a.Status)-1]
}

func (a *API) ActiveView() (plugin.View, bool) {
	v := a.Workspace.Active()
	if v == nil {
		return nil, false
	}
	return v, true
}

func (a *API) GetView(id types.SurfaceID) (plugin.View, bool) {
	v, ok := a.Workspace.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

func (a *API) Views() []plugin.View {
	views := a.Workspace.Views()
	out := make([]plugin.View, len(views))
	for i, v := range views {
		out[i] = v
	}
	return out
}

func (a *API) SaveView(id types.SurfaceID) error {
	v, ok := a.Workspace.Get(id)
	if !ok {
		return fmt.Errorf("save view %d: %w", id, core.ErrNoView)
	}
	return v.Save()
}

// Schedule runs fn at once. Scheduled counts the calls.
func (a *API) Schedule(fn func()) {
	a.mu.Lock()
	a.Scheduled++
	a.mu.Unlock()
	fn()
}

// ScheduledCount is safe to call while plugin goroutines run.
func (a *API) ScheduledCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Scheduled
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("%s: %w", name, plugin.ErrDuplicateCommand)
	}
	a.Commands[name] = cmdFunc
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.Status = append(a.Status, fmt.Sprintf(format, args...))
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}

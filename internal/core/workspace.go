package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/medit/internal/buffer"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/types"
)

// ErrNoView is returned when an operation needs a view that is not open.
var ErrNoView = errors.New("no such view")

// Workspace owns the open views and tracks which one is active.
type Workspace struct {
	mu           sync.RWMutex
	views        map[types.SurfaceID]*View
	order        []types.SurfaceID
	active       types.SurfaceID
	nextID       types.SurfaceID
	eventManager *event.Manager

	ScrollOff int
	TabWidth  int
}

// NewWorkspace creates an empty workspace dispatching on mgr.
func NewWorkspace(mgr *event.Manager, scrollOff, tabWidth int) *Workspace {
	return &Workspace{
		views:        make(map[types.SurfaceID]*View),
		nextID:       1,
		eventManager: mgr,
		ScrollOff:    scrollOff,
		TabWidth:     tabWidth,
	}
}

// Open loads filePath into a new view and activates it. An empty path
// opens a scratch view.
func (w *Workspace) Open(filePath string) (*View, error) {
	buf := buffer.NewSliceBuffer()
	if filePath != "" {
		if err := buf.Load(filePath); err != nil {
			return nil, fmt.Errorf("open %s: %w", filePath, err)
		}
	}

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	v := NewView(id, buf, w.eventManager)
	v.ScrollOff = w.ScrollOff
	v.TabWidth = w.TabWidth
	w.views[id] = v
	w.order = append(w.order, id)
	w.active = id
	w.mu.Unlock()

	logger.DebugTagf("workspace", "opened view %d for '%s'", id, filePath)
	w.dispatch(event.TypeViewOpened, id)
	if filePath != "" && w.eventManager != nil {
		w.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{Surface: id, FilePath: filePath})
	}
	w.dispatch(event.TypeViewActivated, id)
	return v, nil
}

// Close drops a view. The next view in order, if any, becomes active.
func (w *Workspace) Close(id types.SurfaceID) error {
	w.mu.Lock()
	v, ok := w.views[id]
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("close view %d: %w", id, ErrNoView)
	}
	delete(w.views, id)
	idx := w.indexOf(id)
	w.order = append(w.order[:idx], w.order[idx+1:]...)
	activated := false
	if w.active == id {
		w.active = 0
		if len(w.order) > 0 {
			w.active = w.order[min(idx, len(w.order)-1)]
			activated = true
		}
	}
	next := w.active
	w.mu.Unlock()

	// subscribers cancel background work before the view releases its tree
	w.dispatch(event.TypeViewClosed, id)
	v.Close()
	if activated {
		w.dispatch(event.TypeViewActivated, next)
	}
	return nil
}

func (w *Workspace) indexOf(id types.SurfaceID) int {
	for i, have := range w.order {
		if have == id {
			return i
		}
	}
	return -1
}

// Active returns the active view, or nil when nothing is open.
func (w *Workspace) Active() *View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.views[w.active]
}

// Get looks a view up by id.
func (w *Workspace) Get(id types.SurfaceID) (*View, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.views[id]
	return v, ok
}

// Views returns the open views in opening order.
func (w *Workspace) Views() []*View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*View, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.views[id])
	}
	return out
}

// Cycle activates the view delta steps away in opening order, wrapping around.
func (w *Workspace) Cycle(delta int) *View {
	w.mu.Lock()
	if len(w.order) == 0 {
		w.mu.Unlock()
		return nil
	}
	idx := w.indexOf(w.active)
	n := len(w.order)
	idx = ((idx+delta)%n + n) % n
	w.active = w.order[idx]
	v := w.views[w.active]
	w.mu.Unlock()

	w.dispatch(event.TypeViewActivated, v.ID())
	return v
}

// Activate makes the view with id the active one.
func (w *Workspace) Activate(id types.SurfaceID) error {
	w.mu.Lock()
	if _, ok := w.views[id]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("activate view %d: %w", id, ErrNoView)
	}
	changed := w.active != id
	w.active = id
	w.mu.Unlock()

	if changed {
		w.dispatch(event.TypeViewActivated, id)
	}
	return nil
}

// Find returns the view editing filePath, if any.
func (w *Workspace) Find(filePath string) (*View, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range w.order {
		if v := w.views[id]; v.FilePath() == filePath {
			return v, true
		}
	}
	return nil, false
}

func (w *Workspace) dispatch(t event.Type, id types.SurfaceID) {
	if w.eventManager != nil {
		w.eventManager.Dispatch(t, event.ViewData{Surface: id})
	}
}

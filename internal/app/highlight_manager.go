package app

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/highlighter"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/types"
)

// viewHighlight is the debounce state of one view.
type viewHighlight struct {
	timer        *time.Timer
	pendingEdits []types.EditInfo
	fullParse    bool
	running      bool
	rerun        bool
	cancel       context.CancelFunc
}

// HighlightingManager handles debounced asynchronous syntax highlighting.
// Snapshots are taken on the main loop through schedule; parsing happens on
// a background goroutine and only publishes results to the view.
type HighlightingManager struct {
	highlighter *highlighter.Highlighter
	schedule    func(func())
	appRedraw   func()
	debounce    time.Duration

	mu    sync.Mutex // protects views
	views map[types.SurfaceID]*viewHighlight

	parseMu sync.Mutex // a Highlighter serves one goroutine at a time
	wg      sync.WaitGroup
}

// NewHighlightingManager creates a manager. schedule must run its argument on
// the goroutine that owns the views.
func NewHighlightingManager(h *highlighter.Highlighter, schedule func(func()), redrawFunc func()) *HighlightingManager {
	return &HighlightingManager{
		highlighter: h,
		schedule:    schedule,
		appRedraw:   redrawFunc,
		debounce:    config.HighlightDebounce,
		views:       make(map[types.SurfaceID]*viewHighlight),
	}
}

func (hm *HighlightingManager) state(id types.SurfaceID) *viewHighlight {
	st, ok := hm.views[id]
	if !ok {
		st = &viewHighlight{}
		hm.views[id] = st
	}
	return st
}

// AccumulateEdit records an edit for the next incremental parse of v.
func (hm *HighlightingManager) AccumulateEdit(v *core.View, edit types.EditInfo) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	st := hm.state(v.ID())
	st.pendingEdits = append(st.pendingEdits, edit)
	hm.restartTimer(v, st)
}

// Trigger schedules a parse of v from scratch, dropping pending edits.
func (hm *HighlightingManager) Trigger(v *core.View) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	st := hm.state(v.ID())
	st.fullParse = true
	st.pendingEdits = nil
	hm.restartTimer(v, st)
}

// restartTimer must be called with hm.mu held.
func (hm *HighlightingManager) restartTimer(v *core.View, st *viewHighlight) {
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(hm.debounce, func() {
		hm.schedule(func() { hm.run(v) })
	})
}

// run snapshots v and starts the background parse. It runs on the main loop.
func (hm *HighlightingManager) run(v *core.View) {
	hm.mu.Lock()
	st, ok := hm.views[v.ID()]
	if !ok {
		hm.mu.Unlock()
		return
	}
	st.timer = nil
	if st.running {
		st.rerun = true
		hm.mu.Unlock()
		return
	}

	lang := hm.highlighter.LanguageFor(v.FilePath())
	if lang == nil {
		st.pendingEdits = nil
		st.fullParse = false
		hm.mu.Unlock()
		v.UpdateSyntaxHighlights(nil, nil)
		return
	}

	edits := st.pendingEdits
	fullParse := st.fullParse
	st.pendingEdits = nil
	st.fullParse = false
	st.running = true
	ctx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel
	src := v.Buffer().Bytes()
	hm.wg.Add(1)
	hm.mu.Unlock()

	logger.DebugTagf("highlight", "view %d: parsing %d bytes with %d edits (full=%v)", v.ID(), len(src), len(edits), fullParse)

	go func() {
		defer hm.wg.Done()
		defer hm.finish(v, cancel)

		oldTree := v.CurrentTree()
		if oldTree != nil {
			if fullParse {
				oldTree.Close()
				oldTree = nil
			} else {
				for _, edit := range edits {
					oldTree.Edit(edit.InputEdit())
				}
				defer oldTree.Close()
			}
		}

		hm.parseMu.Lock()
		result, tree, err := hm.highlighter.Highlight(ctx, src, lang, oldTree)
		hm.parseMu.Unlock()

		hm.mu.Lock()
		defer hm.mu.Unlock()
		if _, tracked := hm.views[v.ID()]; ctx.Err() != nil || !tracked {
			if tree != nil {
				tree.Close()
			}
			logger.DebugTagf("highlight", "view %d: highlight cancelled", v.ID())
			return
		}
		if err != nil {
			logger.Warnf("HighlightingManager: highlighting view %d failed: %v", v.ID(), err)
			v.UpdateSyntaxHighlights(nil, nil)
		} else {
			v.UpdateSyntaxHighlights(result, tree)
		}
		hm.appRedraw()
	}()
}

// finish clears the running flag and reruns when edits arrived meanwhile.
func (hm *HighlightingManager) finish(v *core.View, cancel context.CancelFunc) {
	cancel()
	hm.mu.Lock()
	defer hm.mu.Unlock()
	st, ok := hm.views[v.ID()]
	if !ok {
		return
	}
	st.running = false
	st.cancel = nil
	if st.rerun {
		st.rerun = false
		hm.restartTimer(v, st)
	}
}

// Forget cancels work for a closed view.
func (hm *HighlightingManager) Forget(id types.SurfaceID) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if st, ok := hm.views[id]; ok {
		hm.stop(st)
		delete(hm.views, id)
	}
}

func (hm *HighlightingManager) stop(st *viewHighlight) {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}

// Shutdown cancels pending and running tasks and waits for them.
func (hm *HighlightingManager) Shutdown() {
	hm.mu.Lock()
	for id, st := range hm.views {
		hm.stop(st)
		delete(hm.views, id)
	}
	hm.mu.Unlock()
	hm.wg.Wait()
	logger.Debugf("HighlightingManager: shut down")
}

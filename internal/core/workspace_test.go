package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/highlighter"
	"github.com/bethropolis/medit/internal/types"
)

func TestWorkspaceOpenCycleClose(t *testing.T) {
	mgr := event.NewManager()
	var closed []types.SurfaceID
	mgr.Subscribe(event.TypeViewClosed, func(e event.Event) bool {
		closed = append(closed, e.Data.(event.ViewData).Surface)
		return false
	})

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0644))

	ws := NewWorkspace(mgr, 3, 4)
	a, err := ws.Open(path)
	require.NoError(t, err)
	b, err := ws.Open("")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, b, ws.Active())
	assert.Equal(t, "alpha", string(a.Buffer().Bytes()))

	assert.Same(t, a, ws.Cycle(1))
	assert.Same(t, b, ws.Cycle(-1))

	require.NoError(t, ws.Close(b.ID()))
	assert.Same(t, a, ws.Active())
	assert.Equal(t, []types.SurfaceID{b.ID()}, closed)
	assert.ErrorIs(t, ws.Close(b.ID()), ErrNoView)

	require.NoError(t, ws.Close(a.ID()))
	assert.Nil(t, ws.Active())
	assert.Empty(t, ws.Views())
}

func TestWorkspaceAppliesEditorSettings(t *testing.T) {
	ws := NewWorkspace(nil, 7, 2)
	v, err := ws.Open("")
	require.NoError(t, err)
	assert.Equal(t, 7, v.ScrollOff)
	assert.Equal(t, 2, v.TabWidth)
}

func TestWorkspaceActivateAndFind(t *testing.T) {
	mgr := event.NewManager()
	activated := 0
	mgr.Subscribe(event.TypeViewActivated, func(e event.Event) bool {
		activated++
		return false
	})

	ws := NewWorkspace(mgr, 0, 4)
	path := filepath.Join(t.TempDir(), "new.txt")
	a, err := ws.Open(path)
	require.NoError(t, err)
	_, err = ws.Open("")
	require.NoError(t, err)

	found, ok := ws.Find(path)
	require.True(t, ok)
	assert.Same(t, a, found)
	_, ok = ws.Find("missing.txt")
	assert.False(t, ok)

	before := activated
	require.NoError(t, ws.Activate(a.ID()))
	assert.Same(t, a, ws.Active())
	assert.Equal(t, before+1, activated)

	require.NoError(t, ws.Activate(a.ID()))
	assert.Equal(t, before+1, activated, "activating the active view is silent")

	assert.ErrorIs(t, ws.Activate(99), ErrNoView)
}

func TestWorkspaceCloseNotifiesBeforeReleasingTree(t *testing.T) {
	mgr := event.NewManager()
	ws := NewWorkspace(mgr, 0, 4)
	v, err := ws.Open("")
	require.NoError(t, err)

	h := highlighter.NewHighlighter()
	result, tree, err := h.Highlight(context.Background(), []byte("package main\n"), h.LanguageFor("main.go"), nil)
	require.NoError(t, err)
	v.UpdateSyntaxHighlights(result, tree)

	treeAtClose := false
	mgr.Subscribe(event.TypeViewClosed, func(e event.Event) bool {
		if current := v.CurrentTree(); current != nil {
			treeAtClose = true
			current.Close()
		}
		return false
	})

	require.NoError(t, ws.Close(v.ID()))
	assert.True(t, treeAtClose, "close subscribers run while the view still holds its tree")
	assert.Nil(t, v.CurrentTree())
}

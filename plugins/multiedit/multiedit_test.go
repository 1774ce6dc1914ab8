package multiedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/plugin/plugintest"
	"github.com/bethropolis/medit/internal/types"
)

func setup(t *testing.T, text string) (*MultiEdit, *plugintest.API, *core.View) {
	t.Helper()
	api := plugintest.New()
	p := New()
	require.NoError(t, p.Initialize(api))
	v := api.OpenText(text)
	return p, api, v
}

func selectText(v *core.View, regions ...types.Region) {
	v.Selection().Set(regions)
}

func TestSimpleSelectionsAreNotRecorded(t *testing.T) {
	p, _, v := setup(t, "this is a test")

	v.Selection().Set([]types.Region{types.Cursor(3)})
	v.MoveHorizontal(1, false)
	v.Selection().Clear()

	st, ok := p.Store().Lookup(v.ID())
	require.True(t, ok)
	assert.Zero(t, st.Len())
}

func TestExpansionReplacesTopFrame(t *testing.T) {
	p, _, v := setup(t, "this is a test")

	selectText(v, reg(0, 4))
	v.Selection().Add(reg(5, 7))
	st := p.Store().Get(v.ID())
	require.Equal(t, 1, st.Len())
	top, _ := st.Top()
	assert.Equal(t, []types.Region{reg(0, 4), reg(5, 7)}, top)

	selectText(v, reg(10, 14))
	assert.Equal(t, 2, st.Len())
}

func TestRestoreNeedsTwoFrames(t *testing.T) {
	p, _, v := setup(t, "this is a test")

	selectText(v, reg(0, 4))
	before := v.Selection().Regions()
	assert.False(t, p.RestoreLastSelection(v))
	assert.Equal(t, before, v.Selection().Regions())
	assert.Equal(t, 1, p.Store().Get(v.ID()).Len())

	selectText(v, types.Cursor(2))
	assert.False(t, p.RestoreLastSelection(v))
}

func TestRestoreWithEmptyHistory(t *testing.T) {
	p, _, v := setup(t, "this is a test")

	selectText(v, types.Cursor(3))
	before := v.Selection().Regions()
	assert.False(t, p.RestoreLastSelection(v))
	assert.Equal(t, before, v.Selection().Regions())
	assert.Zero(t, p.Store().Get(v.ID()).Len())
	assert.Zero(t, p.Store().Get(v.ID()).Pending())
}

func TestRestoreClampsToShortenedDocument(t *testing.T) {
	p, _, v := setup(t, "this is a test")

	selectText(v, reg(10, 14))
	selectText(v, reg(0, 4))
	v.SelectAll()
	require.Equal(t, [][]types.Region{{reg(10, 14)}, {reg(0, 14)}}, p.Store().Get(v.ID()).History())

	require.NoError(t, v.InsertText("ab"))
	require.Equal(t, 2, v.Len())

	assert.True(t, p.RestoreLastSelection(v))
	assert.Equal(t, []types.Region{reg(0, 2)}, v.Selection().Regions())

	require.NoError(t, v.DeleteBackward())
	for _, r := range v.Selection().Regions() {
		assert.LessOrEqual(t, r.End(), v.Len(), "region %v past document end", r)
	}
}

func TestAddLastSelectionEndToEnd(t *testing.T) {
	p, api, v := setup(t, "this is a test")

	selectText(v, reg(0, 4))
	selectText(v, reg(5, 9))
	require.NoError(t, api.Run(CmdAddLastSelection))

	assert.Equal(t, []types.Region{reg(5, 9), reg(0, 4)}, v.Selection().Regions())
	st := p.Store().Get(v.ID())
	assert.Zero(t, st.Len(), "the no-op frame and the restored frame are both popped")
	assert.Zero(t, st.Pending(), "no token is left armed")
	assert.Equal(t, "2 regions", api.LastStatus())
}

func TestRestoredSelectionIsNotRecorded(t *testing.T) {
	p, _, v := setup(t, "one two three four")

	selectText(v, reg(0, 3))
	selectText(v, reg(4, 7))
	selectText(v, reg(8, 13))
	st := p.Store().Get(v.ID())
	require.Equal(t, 3, st.Len())

	// the top frame [8,13] is already selected, so [4,7] is restored next
	require.True(t, p.RestoreLastSelection(v))
	assert.Equal(t, []types.Region{reg(8, 13), reg(4, 7)}, v.Selection().Regions())
	assert.Equal(t, [][]types.Region{{reg(0, 3)}}, st.History())
	assert.Zero(t, st.Pending())

	// a user change after the restore is recorded as usual
	v.Selection().Add(reg(14, 18))
	assert.Equal(t, 2, st.Len())
}

func TestRestoreMultiRegionFrame(t *testing.T) {
	p, _, v := setup(t, "aa bb cc dd")

	selectText(v, reg(0, 2), reg(3, 5))
	selectText(v, reg(9, 11))
	selectText(v, types.Cursor(6))

	require.True(t, p.RestoreLastSelection(v))
	assert.Equal(t, []types.Region{types.Cursor(6), reg(9, 11)}, v.Selection().Regions())

	// the two-region frame is left with a single frame: restore is a no-op now
	assert.False(t, p.RestoreLastSelection(v))
}

func TestJumpToLastRegion(t *testing.T) {
	_, api, v := setup(t, "test test test test")

	selectText(v, reg(0, 4), reg(5, 9))
	require.NoError(t, api.Run(CmdJumpToLastRegion))
	assert.Equal(t, []types.Region{types.Cursor(5)}, v.Selection().Regions())

	selectText(v, reg(9, 5), reg(0, 4))
	require.NoError(t, api.Run(CmdJumpToLastRegion))
	assert.Equal(t, []types.Region{types.Cursor(0)}, v.Selection().Regions())

	v.Selection().Clear()
	assert.False(t, JumpToLastRegion(v))
}

func TestSplitSelection(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"space", []string{" "}, 4},
		{"comma space", []string{", "}, 4},
		{"character", []string{""}, 17},
		{"configured default", nil, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, api, v := setup(t, "this, is, a, test")
			v.SelectAll()
			require.NoError(t, api.Run(CmdSplitSelection, tc.args...))
			assert.Equal(t, tc.want, v.Selection().Len())
		})
	}
}

func TestSplitSeparatorFromConfig(t *testing.T) {
	api := plugintest.New()
	api.SetConfig(pluginName, "split_separator", " ")
	api.SetConfig(pluginName, "max_history", int64(2))
	p := New()
	require.NoError(t, p.Initialize(api))
	assert.Equal(t, 2, p.Store().MaxHistory())

	v := api.OpenText("a b c")
	v.SelectAll()
	require.NoError(t, api.Run(CmdSplitSelection))
	assert.Equal(t, []types.Region{reg(0, 1), reg(2, 3), reg(4, 5)}, v.Selection().Regions())
}

func TestNormalizeRegionEnds(t *testing.T) {
	_, api, v := setup(t, "test test")

	selectText(v, reg(0, 4), reg(9, 5))
	require.NoError(t, api.Run(CmdNormalizeEnds))
	assert.Equal(t, []types.Region{reg(0, 4), reg(5, 9)}, v.Selection().Regions())

	require.NoError(t, api.Run(CmdNormalizeEnds))
	assert.Equal(t, []types.Region{reg(4, 0), reg(9, 5)}, v.Selection().Regions())
}

func TestSplitIntoLinesAndRemoveEmpty(t *testing.T) {
	_, api, v := setup(t, "a\nb\n\nc")
	v.SelectAll()

	require.NoError(t, api.Run(CmdSplitIntoLines))
	require.NoError(t, api.Run(CmdRemoveEmpty))
	assert.Equal(t, []types.Region{reg(0, 1), reg(2, 3), reg(5, 6)}, v.Selection().Regions())
}

func TestStripSelection(t *testing.T) {
	_, api, v := setup(t, "  too much whitespace here  ")
	v.SelectAll()
	require.NoError(t, api.Run(CmdStripSelection))
	assert.Equal(t, []types.Region{reg(2, 26)}, v.Selection().Regions())
}

func TestStripPureWhitespace(t *testing.T) {
	_, api, v := setup(t, "    ")

	v.SelectAll()
	require.NoError(t, api.Run(CmdStripSelection))
	assert.Equal(t, []types.Region{types.Cursor(4)}, v.Selection().Regions())

	v.SelectAll()
	require.NoError(t, api.Run(CmdNormalizeEnds))
	require.NoError(t, api.Run(CmdStripSelection))
	assert.Equal(t, []types.Region{types.Cursor(0)}, v.Selection().Regions())
}

func TestSelectAllMatches(t *testing.T) {
	_, api, v := setup(t, "foo bar foo baz")

	require.NoError(t, api.Run(CmdSelectAllMatches, "fo+"))
	assert.Equal(t, []types.Region{reg(0, 3), reg(8, 11)}, v.Selection().Regions())
	assert.Equal(t, "2 matches", api.LastStatus())

	assert.Error(t, api.Run(CmdSelectAllMatches, "("))
	assert.Error(t, api.Run(CmdSelectAllMatches))

	require.NoError(t, api.Run(CmdSelectAllMatches, "qux"))
	assert.Equal(t, []types.Region{reg(0, 3), reg(8, 11)}, v.Selection().Regions(), "no match keeps the selection")
}

func TestCommandsWithoutViewAreNoops(t *testing.T) {
	api := plugintest.New()
	require.NoError(t, New().Initialize(api))
	for name := range api.Commands {
		assert.NoError(t, api.Run(name, "x"), name)
	}
}

func TestClosingViewForgetsState(t *testing.T) {
	p, api, v := setup(t, "abc")
	selectText(v, reg(0, 2))
	_, ok := p.Store().Lookup(v.ID())
	require.True(t, ok)

	require.NoError(t, api.Workspace.Close(v.ID()))
	_, ok = p.Store().Lookup(v.ID())
	assert.False(t, ok)
}

func TestViewsHaveIndependentHistory(t *testing.T) {
	p, api, a := setup(t, "first view")
	b := api.OpenText("second view")

	selectText(a, reg(0, 5))
	selectText(b, reg(0, 6))
	selectText(b, reg(7, 11))

	assert.Equal(t, 1, p.Store().Get(a.ID()).Len())
	assert.Equal(t, 2, p.Store().Get(b.ID()).Len())
}

func TestDuplicateRegistrationFails(t *testing.T) {
	api := plugintest.New()
	require.NoError(t, New().Initialize(api))
	err := New().Initialize(api)
	assert.ErrorIs(t, err, plugin.ErrDuplicateCommand)
}

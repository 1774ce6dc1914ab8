package multiedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/types"
)

func reg(a, b int) types.Region { return types.Region{Anchor: a, Active: b} }

func TestRecordPushesAndReplaces(t *testing.T) {
	var st SurfaceState

	st.Record([]types.Region{reg(0, 4)}, 0)
	st.Record([]types.Region{reg(0, 4), reg(5, 9)}, 0) // expansion
	require.Equal(t, 1, st.Len())

	top, _ := st.Top()
	assert.Equal(t, []types.Region{reg(0, 4), reg(5, 9)}, top)

	st.Record([]types.Region{reg(10, 12)}, 0)
	assert.Equal(t, 2, st.Len())
}

func TestRecordStoresACopy(t *testing.T) {
	var st SurfaceState
	in := []types.Region{reg(0, 4)}
	st.Record(in, 0)
	in[0] = reg(9, 9)

	top, _ := st.Top()
	assert.Equal(t, reg(0, 4), top[0])
}

func TestRecordCapsHistory(t *testing.T) {
	var st SurfaceState
	for i := 0; i < 5; i++ {
		st.Record([]types.Region{reg(i*10, i*10+2)}, 3)
	}
	assert.Equal(t, [][]types.Region{
		{reg(20, 22)}, {reg(30, 32)}, {reg(40, 42)},
	}, st.History())
}

func TestTokens(t *testing.T) {
	var st SurfaceState
	assert.False(t, st.consume())

	st.Arm()
	st.Arm()
	st.Withdraw()
	assert.Equal(t, 1, st.Pending())
	assert.True(t, st.consume())
	assert.False(t, st.consume())

	st.Withdraw()
	assert.Zero(t, st.Pending(), "withdraw never goes negative")
}

func TestPopOnEmpty(t *testing.T) {
	var st SurfaceState
	st.Pop()
	_, ok := st.Top()
	assert.False(t, ok)
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(0)
	_, ok := s.Lookup(1)
	assert.False(t, ok)

	a := s.Get(1)
	assert.Same(t, a, s.Get(1))
	s.Get(2)
	assert.Equal(t, 2, s.Len())

	s.Forget(1)
	_, ok = s.Lookup(1)
	assert.False(t, ok)
	assert.NotSame(t, a, s.Get(1), "a forgotten view starts fresh")

	s.Reset()
	assert.Zero(t, s.Len())

	s.SetMaxHistory(-4)
	assert.Zero(t, s.MaxHistory())
}

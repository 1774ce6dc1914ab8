package selection

import (
	"testing"

	"github.com/bethropolis/medit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(a, b int) types.Region { return types.Region{Anchor: a, Active: b} }

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := New(nil)
	require.True(t, s.Add(r(5, 9)))
	require.True(t, s.Add(r(0, 4)))

	assert.Equal(t, []types.Region{r(5, 9), r(0, 4)}, s.Regions())
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, r(0, 4), last)
}

func TestAddMergesOverlaps(t *testing.T) {
	s := New(nil)
	s.Add(r(0, 3))
	s.Add(r(10, 12))
	s.Add(r(6, 8))
	require.True(t, s.Add(r(2, 11)))

	assert.Equal(t, []types.Region{r(0, 12)}, s.Regions())
}

func TestAddCoveredRegionIsNoop(t *testing.T) {
	calls := 0
	s := New(func(*Selection) { calls++ })
	s.Add(r(0, 10))
	require.Equal(t, 1, calls)

	assert.False(t, s.Add(r(2, 5)))
	assert.False(t, s.Add(r(10, 0)))
	assert.False(t, s.Add(types.Cursor(10)))
	assert.Equal(t, 1, calls, "no-op adds must not notify")
}

func TestAddTouchingRegionsStaySeparate(t *testing.T) {
	s := New(nil)
	s.Add(r(0, 1))
	s.Add(r(1, 2))
	s.Add(r(2, 3))
	assert.Equal(t, 3, s.Len())
}

func TestSetNotifiesOnce(t *testing.T) {
	calls := 0
	s := New(func(*Selection) { calls++ })
	s.Set([]types.Region{r(0, 4), r(5, 9), r(3, 6)})

	assert.Equal(t, 1, calls)
	assert.Equal(t, []types.Region{r(0, 9)}, s.Regions())

	assert.False(t, s.Set([]types.Region{r(0, 9)}))
	assert.Equal(t, 1, calls)
}

func TestClear(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Clear())
	s.Add(r(1, 2))
	assert.True(t, s.Clear())
	assert.Zero(t, s.Len())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestRegionsIsACopy(t *testing.T) {
	s := New(nil)
	s.Add(r(0, 4))
	snapshot := s.Regions()
	s.Add(r(6, 8))
	snapshot[0] = r(1, 1)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, r(0, 4), s.At(0))
}

func TestContainsAll(t *testing.T) {
	s := New(nil)
	s.Set([]types.Region{r(0, 4), r(5, 9)})

	assert.True(t, s.ContainsAll([]types.Region{r(0, 4)}))
	assert.True(t, s.ContainsAll([]types.Region{r(1, 2), r(9, 6)}))
	assert.False(t, s.ContainsAll([]types.Region{r(3, 6)}))
}

func TestFingerprintIsOrderSensitive(t *testing.T) {
	a := Fingerprint([]types.Region{r(0, 4), r(5, 9)})
	b := Fingerprint([]types.Region{r(5, 9), r(0, 4)})
	c := Fingerprint([]types.Region{r(4, 0), r(5, 9)})

	assert.Equal(t, "0,4;5,9", a)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestIsComplex(t *testing.T) {
	assert.False(t, IsComplex(nil))
	assert.False(t, IsComplex([]types.Region{types.Cursor(3)}))
	assert.True(t, IsComplex([]types.Region{r(3, 4)}))
	assert.True(t, IsComplex([]types.Region{types.Cursor(1), types.Cursor(3)}))
}

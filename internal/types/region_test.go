package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionBounds(t *testing.T) {
	r := Region{Anchor: 9, Active: 5}
	assert.Equal(t, 5, r.Begin())
	assert.Equal(t, 9, r.End())
	assert.Equal(t, 4, r.Size())
	assert.True(t, r.Reversed())
	assert.False(t, r.Empty())
	assert.Equal(t, Region{Anchor: 5, Active: 9}, r.Forward())
	assert.Equal(t, Region{Anchor: 5, Active: 9}, r.Flip())
	assert.True(t, Cursor(3).Empty())
}

func TestRegionContains(t *testing.T) {
	outer := Region{Anchor: 0, Active: 10}
	assert.True(t, outer.Contains(Region{Anchor: 2, Active: 4}))
	assert.True(t, outer.Contains(Region{Anchor: 10, Active: 0}))
	assert.True(t, outer.Contains(Cursor(10)))
	assert.False(t, outer.Contains(Region{Anchor: 8, Active: 11}))
}

func TestRegionIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want bool
	}{
		{"overlap", Region{0, 5}, Region{3, 8}, true},
		{"touching ranges stay apart", Region{0, 4}, Region{4, 8}, false},
		{"disjoint", Region{0, 2}, Region{5, 8}, false},
		{"cursor inside", Region{0, 4}, Cursor(2), true},
		{"cursor on edge", Region{0, 4}, Cursor(4), true},
		{"equal cursors", Cursor(3), Cursor(3), true},
		{"different cursors", Cursor(3), Cursor(4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestRegionCoverKeepsDirection(t *testing.T) {
	got := Region{Anchor: 6, Active: 2}.Cover(Region{Anchor: 4, Active: 9})
	assert.Equal(t, Region{Anchor: 9, Active: 2}, got)

	got = Region{Anchor: 2, Active: 6}.Cover(Region{Anchor: 0, Active: 3})
	assert.Equal(t, Region{Anchor: 0, Active: 6}, got)
}

func TestRegionClamp(t *testing.T) {
	assert.Equal(t, Region{Anchor: 2, Active: 4}, Region{Anchor: 2, Active: 4}.Clamp(10))
	assert.Equal(t, Region{Anchor: 2, Active: 2}, Region{Anchor: 10, Active: 14}.Clamp(2))
	assert.Equal(t, Region{Anchor: 2, Active: 0}, Region{Anchor: 14, Active: -3}.Clamp(2))
}

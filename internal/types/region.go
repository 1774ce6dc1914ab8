// internal/types/region.go
package types

import "fmt"

// Region is a directional range over a document, measured in rune offsets.
// Anchor is where the region started, Active is the end that moves.
// Anchor == Active is an empty region, i.e. a plain cursor.
type Region struct {
	Anchor int
	Active int
}

// Cursor returns an empty region at offset.
func Cursor(offset int) Region {
	return Region{Anchor: offset, Active: offset}
}

// Begin returns the lower offset of the region.
func (r Region) Begin() int {
	return min(r.Anchor, r.Active)
}

// End returns the higher offset of the region.
func (r Region) End() int {
	return max(r.Anchor, r.Active)
}

// Size is the number of runes covered.
func (r Region) Size() int {
	return r.End() - r.Begin()
}

// Empty reports whether the region is a plain cursor.
func (r Region) Empty() bool {
	return r.Anchor == r.Active
}

// Reversed reports whether the active end sits before the anchor.
func (r Region) Reversed() bool {
	return r.Active < r.Anchor
}

// Flip swaps anchor and active end.
func (r Region) Flip() Region {
	return Region{Anchor: r.Active, Active: r.Anchor}
}

// Forward returns the region with Anchor <= Active.
func (r Region) Forward() Region {
	return Region{Anchor: r.Begin(), Active: r.End()}
}

// Contains reports whether other lies within r, boundaries included.
func (r Region) Contains(other Region) bool {
	return other.Begin() >= r.Begin() && other.End() <= r.End()
}

// Intersects reports whether the two regions share at least one rune,
// or whether an empty region sits inside the other one.
func (r Region) Intersects(other Region) bool {
	if r.Empty() || other.Empty() {
		return r.Contains(other) || other.Contains(r)
	}
	return r.Begin() < other.End() && other.Begin() < r.End()
}

// Cover returns the smallest region spanning both r and other, keeping the
// direction of r.
func (r Region) Cover(other Region) Region {
	begin := min(r.Begin(), other.Begin())
	end := max(r.End(), other.End())
	if r.Reversed() {
		return Region{Anchor: end, Active: begin}
	}
	return Region{Anchor: begin, Active: end}
}

// Clamp limits both ends of r to [0, n], keeping the direction.
func (r Region) Clamp(n int) Region {
	return Region{
		Anchor: max(0, min(r.Anchor, n)),
		Active: max(0, min(r.Active, n)),
	}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d, %d)", r.Anchor, r.Active)
}

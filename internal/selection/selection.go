// Package selection holds the ordered set of regions active on one view.
package selection

import (
	"strconv"
	"strings"

	"github.com/bethropolis/medit/internal/types"
)

// ChangeFunc is called after every mutation that changed the region list.
type ChangeFunc func(s *Selection)

// Selection is an ordered sequence of disjoint regions. Order follows
// insertion, not document position.
type Selection struct {
	regions  []types.Region
	onChange ChangeFunc
}

// New creates an empty selection. onChange may be nil.
func New(onChange ChangeFunc) *Selection {
	return &Selection{onChange: onChange}
}

// Len returns the number of regions.
func (s *Selection) Len() int {
	return len(s.regions)
}

// At returns the i-th region in insertion order.
func (s *Selection) At(i int) types.Region {
	return s.regions[i]
}

// Last returns the most recently added region.
func (s *Selection) Last() (types.Region, bool) {
	if len(s.regions) == 0 {
		return types.Region{}, false
	}
	return s.regions[len(s.regions)-1], true
}

// Regions returns a copy of the regions, decoupled from later mutation.
func (s *Selection) Regions() []types.Region {
	out := make([]types.Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Contains reports whether r is spanned by one of the regions.
func (s *Selection) Contains(r types.Region) bool {
	return Covers(s.regions, r)
}

// ContainsAll reports whether every region in rs is spanned by the selection.
func (s *Selection) ContainsAll(rs []types.Region) bool {
	for _, r := range rs {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// Add merges r into the selection. Regions overlapping r are folded into a
// single region that takes the place of the first one. It returns false, and
// does not notify, when the selection already covered r.
func (s *Selection) Add(r types.Region) bool {
	next, changed := merge(s.regions, r)
	if !changed {
		return false
	}
	s.regions = next
	s.notify()
	return true
}

// Set replaces every region with rs, merging overlaps, as one mutation.
func (s *Selection) Set(rs []types.Region) bool {
	var next []types.Region
	for _, r := range rs {
		next, _ = merge(next, r)
	}
	if equal(next, s.regions) {
		return false
	}
	s.regions = next
	s.notify()
	return true
}

// Clear removes every region.
func (s *Selection) Clear() bool {
	if len(s.regions) == 0 {
		return false
	}
	s.regions = nil
	s.notify()
	return true
}

// Fingerprint is an order-sensitive, value-based key of the region list.
func (s *Selection) Fingerprint() string {
	return Fingerprint(s.regions)
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange(s)
	}
}

// Covers reports whether one of regions spans r.
func Covers(regions []types.Region, r types.Region) bool {
	for _, have := range regions {
		if have.Contains(r) {
			return true
		}
	}
	return false
}

// Fingerprint renders regions as a comparable string.
func Fingerprint(regions []types.Region) string {
	var sb strings.Builder
	for i, r := range regions {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(r.Anchor))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(r.Active))
	}
	return sb.String()
}

// IsComplex reports whether regions is more than a single plain cursor.
func IsComplex(regions []types.Region) bool {
	if len(regions) > 1 {
		return true
	}
	return len(regions) == 1 && !regions[0].Empty()
}

func merge(regions []types.Region, r types.Region) ([]types.Region, bool) {
	first := -1
	merged := r
	for i, have := range regions {
		if !have.Intersects(merged) {
			continue
		}
		if have.Contains(merged) && first == -1 {
			// Already covered by a single region, nothing changes.
			return regions, false
		}
		if first == -1 {
			first = i
		}
		merged = merged.Cover(have)
	}

	if first == -1 {
		out := make([]types.Region, len(regions), len(regions)+1)
		copy(out, regions)
		return append(out, r), true
	}

	out := make([]types.Region, 0, len(regions))
	for i, have := range regions {
		switch {
		case i == first:
			out = append(out, merged)
		case have.Intersects(merged) && merged.Contains(have):
			// folded into merged
		default:
			out = append(out, have)
		}
	}
	return out, true
}

func equal(a, b []types.Region) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

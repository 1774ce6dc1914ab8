package multiedit

import (
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/types"
)

// RestoreLastSelection adds the regions of the most recent history frame back
// to the view's selection and pops that frame. When adding changed nothing,
// because the frame was already part of the selection, the next older frame
// is tried, down to and including the last remaining one, so a retry can
// empty the history. Nothing happens with fewer than two frames. Frame
// regions are clamped to the current document length. It reports whether
// the selection changed.
func (p *MultiEdit) RestoreLastSelection(v plugin.View) bool {
	st := p.store.Get(v.ID())
	if st.Len() < 2 {
		return false
	}

	sel := v.Selection()
	for st.Len() > 0 {
		before := sel.Fingerprint()
		frame, _ := st.Top()
		n := v.Len()
		for _, r := range frame {
			r = r.Clamp(n)
			st.Arm()
			if !sel.Add(r) {
				st.Withdraw()
			}
		}
		st.Pop()
		if sel.Fingerprint() != before {
			return true
		}
	}
	return false
}

// JumpToLastRegion collapses the selection to a cursor at the start of the
// most recently added region.
func JumpToLastRegion(v plugin.View) bool {
	last, ok := v.Selection().Last()
	if !ok {
		return false
	}
	return v.Selection().Set([]types.Region{types.Cursor(last.Begin())})
}

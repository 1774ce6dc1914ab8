package multiedit

import (
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/selection"
	"github.com/bethropolis/medit/internal/types"
)

// onSelectionModified records complex selections into the view's history.
// Changes caused by the restore command carry an armed token and are skipped.
func (p *MultiEdit) onSelectionModified(e event.Event) bool {
	data, ok := e.Data.(event.SelectionModifiedData)
	if !ok {
		logger.Warnf("%s: unexpected selection event payload %T", p.Name(), e.Data)
		return false
	}
	p.observe(data.Surface, data.Regions)
	return false
}

func (p *MultiEdit) observe(id types.SurfaceID, regions []types.Region) {
	st := p.store.Get(id)
	if st.consume() {
		logger.DebugTagf("multiedit", "view %d: ignoring self-inflicted change", id)
		return
	}
	if !selection.IsComplex(regions) {
		return
	}
	st.Record(regions, p.store.MaxHistory())
	logger.DebugTagf("multiedit", "view %d: %d frame(s) after %s", id, st.Len(), selection.Fingerprint(regions))
}

func (p *MultiEdit) onViewClosed(e event.Event) bool {
	if data, ok := e.Data.(event.ViewData); ok {
		p.store.Forget(data.Surface)
	}
	return false
}

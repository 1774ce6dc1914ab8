// internal/core/view.go
package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/medit/internal/buffer"
	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/event"
	hl "github.com/bethropolis/medit/internal/highlighter"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/selection"
	"github.com/bethropolis/medit/internal/types"
)

// View is one open document surface: a buffer, its multi-region selection
// and the viewport onto it.
type View struct {
	id           types.SurfaceID
	buffer       buffer.Buffer
	sel          *selection.Selection
	eventManager *event.Manager

	ViewportY  int // Top visible line index (0-based)
	ViewportX  int // Leftmost visible visual column
	viewWidth  int
	viewHeight int
	ScrollOff  int
	TabWidth   int

	// Syntax Highlighting State, written by the background highlighter.
	highlightMutex   sync.RWMutex
	syntaxHighlights hl.HighlightResult
	syntaxTree       *sitter.Tree
}

// NewView wraps buf in a view with a single cursor at the start of the document.
// mgr may be nil, in which case no events are dispatched.
func NewView(id types.SurfaceID, buf buffer.Buffer, mgr *event.Manager) *View {
	v := &View{
		id:               id,
		buffer:           buf,
		eventManager:     mgr,
		ScrollOff:        config.DefaultScrollOff,
		TabWidth:         config.DefaultTabWidth,
		syntaxHighlights: make(hl.HighlightResult),
	}
	v.sel = selection.New(v.selectionChanged)
	v.sel.Set([]types.Region{types.Cursor(0)})
	return v
}

func (v *View) selectionChanged(s *selection.Selection) {
	v.ScrollToPrimary()
	if v.eventManager == nil {
		return
	}
	v.eventManager.Dispatch(event.TypeSelectionModified, event.SelectionModifiedData{
		Surface: v.id,
		Regions: s.Regions(),
	})
}

func (v *View) ID() types.SurfaceID { return v.id }

func (v *View) Buffer() buffer.Buffer { return v.buffer }

// Selection exposes the live selection. Mutating it notifies subscribers of
// event.TypeSelectionModified.
func (v *View) Selection() *selection.Selection { return v.sel }

// Len is the document length in runes.
func (v *View) Len() int { return v.buffer.Len() }

// Text returns the text covered by r.
func (v *View) Text(r types.Region) string {
	return v.buffer.Slice(r.Begin(), r.End())
}

// Runes returns the whole document as runes, for offset-based scanning.
func (v *View) Runes() []rune {
	return []rune(string(v.buffer.Bytes()))
}

func (v *View) FilePath() string { return v.buffer.FilePath() }

// Primary is the most recently added region, the one the terminal cursor follows.
func (v *View) Primary() types.Region {
	r, _ := v.sel.Last()
	return r
}

// PrimaryPosition returns the line/column of the primary region's active end.
func (v *View) PrimaryPosition() types.Position {
	return v.buffer.OffsetToPosition(v.Primary().Active)
}

// Position converts a rune offset.
func (v *View) Position(offset int) types.Position {
	return v.buffer.OffsetToPosition(offset)
}

// IsModified reports unsaved changes.
func (v *View) IsModified() bool { return v.buffer.IsModified() }

// Save writes the buffer to its file.
func (v *View) Save() error {
	return v.SaveAs("")
}

// SaveAs writes the buffer to path and binds the view to it. An empty path
// uses the current file.
func (v *View) SaveAs(path string) error {
	if err := v.buffer.Save(path); err != nil {
		return err
	}
	if v.eventManager != nil {
		v.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{Surface: v.id, FilePath: v.buffer.FilePath()})
	}
	return nil
}

// SetText replaces the whole document and resets the selection to a cursor at 0.
func (v *View) SetText(text string) {
	info := v.buffer.SetText(text)
	v.dispatchEdit(info)
	v.sel.Set([]types.Region{types.Cursor(0)})
}

// --- Editing ---

type edit struct {
	begin, end int
	text       string
}

// applyEdits replaces one span per region and leaves a cursor after each
// inserted text. Spans must not overlap.
func (v *View) applyEdits(plan func(r types.Region) edit) error {
	regions := v.sel.Regions()
	if len(regions) == 0 {
		return nil
	}
	edits := make([]edit, len(regions))
	order := make([]int, len(regions))
	for i, r := range regions {
		edits[i] = plan(r)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := edits[order[a]], edits[order[b]]
		if ea.begin != eb.begin {
			return ea.begin < eb.begin
		}
		return ea.end < eb.end
	})

	next := make([]types.Region, len(regions))
	shift := 0
	for _, i := range order {
		e := edits[i]
		n := utf8.RuneCountInString(e.text)
		next[i] = types.Cursor(e.begin + shift + n)
		shift += n - (e.end - e.begin)
	}

	// Back to front keeps the offsets of earlier edits valid.
	for k := len(order) - 1; k >= 0; k-- {
		e := edits[order[k]]
		if e.begin != e.end {
			info, err := v.buffer.Delete(v.buffer.OffsetToPosition(e.begin), v.buffer.OffsetToPosition(e.end))
			if err != nil {
				return fmt.Errorf("delete [%d, %d): %w", e.begin, e.end, err)
			}
			v.dispatchEdit(info)
		}
		if e.text != "" {
			info, err := v.buffer.Insert(v.buffer.OffsetToPosition(e.begin), []byte(e.text))
			if err != nil {
				return fmt.Errorf("insert at %d: %w", e.begin, err)
			}
			v.dispatchEdit(info)
		}
	}

	v.sel.Set(next)
	return nil
}

func (v *View) dispatchEdit(info types.EditInfo) {
	if v.eventManager != nil {
		v.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Surface: v.id, Edit: info})
	}
}

// InsertText replaces every region with text.
func (v *View) InsertText(text string) error {
	return v.applyEdits(func(r types.Region) edit {
		return edit{begin: r.Begin(), end: r.End(), text: text}
	})
}

// InsertPerRegion inserts texts[i] at the i-th region in document order.
// It falls back to InsertText of the joined texts when the counts differ.
func (v *View) InsertPerRegion(texts []string) error {
	regions := v.sel.Regions()
	if len(texts) != len(regions) {
		return v.InsertText(strings.Join(texts, "\n"))
	}

	rank := make(map[types.Region]int, len(regions))
	sorted := append([]types.Region{}, regions...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Begin() < sorted[b].Begin() })
	for i, r := range sorted {
		rank[r] = i
	}
	return v.applyEdits(func(r types.Region) edit {
		return edit{begin: r.Begin(), end: r.End(), text: texts[rank[r]]}
	})
}

// DeleteBackward removes the selected text, or the rune before each cursor.
func (v *View) DeleteBackward() error {
	return v.applyEdits(func(r types.Region) edit {
		if !r.Empty() || r.Begin() == 0 {
			return edit{begin: r.Begin(), end: r.End()}
		}
		return edit{begin: r.Begin() - 1, end: r.Begin()}
	})
}

// DeleteForward removes the selected text, or the rune after each cursor.
func (v *View) DeleteForward() error {
	n := v.buffer.Len()
	return v.applyEdits(func(r types.Region) edit {
		if !r.Empty() || r.End() >= n {
			return edit{begin: r.Begin(), end: r.End()}
		}
		return edit{begin: r.Begin(), end: r.Begin() + 1}
	})
}

// --- Highlighting ---

// SyntaxHighlightsForLine returns the computed syntax styles for a line.
func (v *View) SyntaxHighlightsForLine(lineNum int) []types.StyledRange {
	v.highlightMutex.RLock()
	defer v.highlightMutex.RUnlock()
	return v.syntaxHighlights[lineNum]
}

// UpdateSyntaxHighlights swaps in a new result and tree, closing the old tree.
func (v *View) UpdateSyntaxHighlights(result hl.HighlightResult, tree *sitter.Tree) {
	v.highlightMutex.Lock()
	defer v.highlightMutex.Unlock()

	if v.syntaxTree != nil && v.syntaxTree != tree {
		v.syntaxTree.Close()
	}
	if result == nil {
		result = make(hl.HighlightResult)
	}
	v.syntaxHighlights = result
	v.syntaxTree = tree
	logger.DebugTagf("highlight", "view %d: highlights on %d lines", v.id, len(result))
}

// CurrentTree returns a private copy of the last syntax tree, or nil.
func (v *View) CurrentTree() *sitter.Tree {
	v.highlightMutex.RLock()
	defer v.highlightMutex.RUnlock()
	if v.syntaxTree == nil {
		return nil
	}
	return v.syntaxTree.Copy()
}

// Close releases the syntax tree.
func (v *View) Close() {
	v.UpdateSyntaxHighlights(nil, nil)
}

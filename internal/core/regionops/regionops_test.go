package regionops

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/medit/internal/types"
)

func reg(a, b int) types.Region { return types.Region{Anchor: a, Active: b} }

func all(doc []rune) []types.Region { return []types.Region{reg(0, len(doc))} }

func TestSplitBySeparator(t *testing.T) {
	doc := []rune("this, is, a, test")

	tests := []struct {
		sep  string
		want int
	}{
		{" ", 4},
		{", ", 4},
		{"", 17},
		{"x", 1},
	}
	for _, tc := range tests {
		t.Run("sep="+tc.sep, func(t *testing.T) {
			assert.Len(t, SplitBySeparator(doc, all(doc), tc.sep), tc.want)
		})
	}

	assert.Equal(t,
		[]string{"this", "is", "a", "test"},
		Texts(doc, SplitBySeparator(doc, all(doc), ", ")))
}

func TestSplitKeepsEmptyPiecesAndCursors(t *testing.T) {
	doc := []rune("a,,b")
	got := SplitBySeparator(doc, []types.Region{reg(4, 0), types.Cursor(1)}, ",")
	assert.Equal(t, []types.Region{reg(0, 1), reg(2, 2), reg(3, 4), types.Cursor(1)}, got)
}

func TestSplitIntoLinesThenRemoveEmpty(t *testing.T) {
	doc := []rune("a\nb\n\nc")
	lines := SplitIntoLines(doc, all(doc))
	assert.Equal(t, []types.Region{reg(0, 1), reg(2, 3), reg(4, 4), reg(5, 6)}, lines)

	assert.Equal(t, []types.Region{reg(0, 1), reg(2, 3), reg(5, 6)}, RemoveEmpty(lines))
}

func TestRemoveEmptyKeepsAllEmptySelection(t *testing.T) {
	in := []types.Region{types.Cursor(1), types.Cursor(3)}
	assert.Equal(t, in, RemoveEmpty(in))
}

func TestNormalizeEnds(t *testing.T) {
	assert.Equal(t,
		[]types.Region{reg(0, 4), reg(5, 9)},
		NormalizeEnds([]types.Region{reg(0, 4), reg(9, 5)}))

	assert.Equal(t, []types.Region{reg(14, 0)}, NormalizeEnds([]types.Region{reg(0, 14)}))
	assert.Equal(t, []types.Region{reg(0, 14)}, NormalizeEnds(NormalizeEnds([]types.Region{reg(0, 14)})))
}

func TestStrip(t *testing.T) {
	doc := []rune("  too much whitespace here  ")
	assert.Equal(t, []types.Region{reg(2, 26)}, Strip(doc, all(doc)))
	assert.Equal(t, []types.Region{reg(26, 2)}, Strip(doc, []types.Region{reg(28, 0)}))
}

func TestStripPureWhitespace(t *testing.T) {
	doc := []rune("    ")
	assert.Equal(t, []types.Region{types.Cursor(4)}, Strip(doc, []types.Region{reg(0, 4)}))
	assert.Equal(t, []types.Region{types.Cursor(0)}, Strip(doc, []types.Region{reg(4, 0)}))
}

func TestStripUnicodeWhitespace(t *testing.T) {
	doc := []rune(" \tx　")
	assert.Equal(t, []types.Region{reg(2, 3)}, Strip(doc, all(doc)))
}

func TestFindAll(t *testing.T) {
	doc := []rune("héllo wörld hello")
	re := regexp.MustCompile(`h.llo`)

	assert.Equal(t, []types.Region{reg(0, 5), reg(12, 17)}, FindAll(doc, []types.Region{types.Cursor(3)}, re))
	assert.Equal(t, []types.Region{reg(12, 17)}, FindAll(doc, []types.Region{reg(6, 17)}, re))
	assert.Empty(t, FindAll(doc, all(doc), regexp.MustCompile(`z*`)))
}

func TestJoin(t *testing.T) {
	doc := []rune("one two")
	assert.Equal(t, "two\none", Join(doc, []types.Region{reg(4, 7), reg(3, 0)}, "\n"))
}

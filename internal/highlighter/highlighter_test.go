package highlighter

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/types"
)

func styleAt(ranges []types.StyledRange, col int) string {
	for _, r := range ranges {
		if col >= r.StartCol && col < r.EndCol {
			return r.StyleName
		}
	}
	return ""
}

func TestHighlightGo(t *testing.T) {
	h := NewHighlighter()
	lang := h.LanguageFor("main.go")
	require.NotNil(t, lang)

	src := []byte("package main\n\n// hi\nfunc main() {\n\tx := \"é s\"\n}\n")
	result, tree, err := h.Highlight(context.Background(), src, lang, nil)
	require.NoError(t, err)
	require.NotNil(t, tree)
	defer tree.Close()

	assert.Equal(t, "keyword", styleAt(result[0], 0))
	assert.Equal(t, "comment", styleAt(result[2], 1))
	assert.Equal(t, "keyword", styleAt(result[3], 0))
	assert.Equal(t, "function", styleAt(result[3], 5))
	// the string starts at rune 6 and spans 5 runes despite the two-byte é
	assert.Equal(t, "string", styleAt(result[4], 10))
	assert.Equal(t, "", styleAt(result[4], 11))
}

func TestLanguageForUnknownExtension(t *testing.T) {
	h := NewHighlighter()
	assert.Nil(t, h.LanguageFor("notes.txt"))
	assert.Nil(t, h.LanguageFor(""))
}

func TestHighlightCancelled(t *testing.T) {
	h := NewHighlighter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := h.Highlight(ctx, []byte("package main\n"), h.LanguageFor("a.go"), nil)
	assert.Error(t, err)
}

func TestAddCaptureSplitsLines(t *testing.T) {
	lines := [][]byte{[]byte("a `raw"), []byte("mid"), []byte("end` b")}
	result := make(HighlightResult)
	addCapture(result, lines, pt(0, 2), pt(2, 4), "string")

	assert.Equal(t, []types.StyledRange{{StartCol: 2, EndCol: 6, StyleName: "string"}}, result[0])
	assert.Equal(t, []types.StyledRange{{StartCol: 0, EndCol: 3, StyleName: "string"}}, result[1])
	assert.Equal(t, []types.StyledRange{{StartCol: 0, EndCol: 4, StyleName: "string"}}, result[2])
}

func TestCaptureNameToStyleName(t *testing.T) {
	assert.Equal(t, "keyword", captureNameToStyleName("@keyword.control"))
	assert.Equal(t, "string", captureNameToStyleName("string"))
}

func pt(row, col uint32) sitter.Point { return sitter.Point{Row: row, Column: col} }

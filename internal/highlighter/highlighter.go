package highlighter

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"

	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/types"
	"github.com/bethropolis/medit/internal/utils"
)

// HighlightResult maps line number -> styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// goHighlightsQuery captures the Go constructs the themes know how to style.
const goHighlightsQuery = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(true) @constant
(false) @constant
(nil) @constant
(type_identifier) @type
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function)
(call_expression function: (identifier) @function)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch" "type" "var"
] @keyword
`

// Language pairs a grammar with its highlight query.
type Language struct {
	Name       string
	Grammar    *sitter.Language
	Query      string
	Extensions []string
}

var golang = &Language{
	Name:       "Go",
	Grammar:    gosrc.GetLanguage(),
	Query:      goHighlightsQuery,
	Extensions: []string{".go"},
}

// Highlighter parses documents and turns query captures into styled ranges.
// A Highlighter is safe for use by one goroutine at a time.
type Highlighter struct {
	parser    *sitter.Parser
	languages []*Language

	queryMu sync.Mutex
	queries map[*Language]*sitter.Query
}

// NewHighlighter creates a highlighter knowing the built-in languages.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		parser:    sitter.NewParser(),
		languages: []*Language{golang},
		queries:   make(map[*Language]*sitter.Query),
	}
}

// LanguageFor picks a language by file extension, or nil.
func (h *Highlighter) LanguageFor(filePath string) *Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, lang := range h.languages {
		for _, e := range lang.Extensions {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}

func (h *Highlighter) query(lang *Language) (*sitter.Query, error) {
	h.queryMu.Lock()
	defer h.queryMu.Unlock()
	if q, ok := h.queries[lang]; ok {
		return q, nil
	}
	q, err := sitter.NewQuery([]byte(lang.Query), lang.Grammar)
	if err != nil {
		return nil, fmt.Errorf("query for %s: %w", lang.Name, err)
	}
	h.queries[lang] = q
	return q, nil
}

// Highlight parses src, reusing oldTree when it has already been edited to
// match src, and returns the highlights with the new tree. The caller owns
// the returned tree.
func (h *Highlighter) Highlight(ctx context.Context, src []byte, lang *Language, oldTree *sitter.Tree) (HighlightResult, *sitter.Tree, error) {
	if lang == nil {
		return nil, nil, fmt.Errorf("no language provided for highlighting")
	}
	h.parser.SetLanguage(lang.Grammar)

	tree, err := h.parser.ParseCtx(ctx, oldTree, src)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing failed: %w", err)
	}

	query, err := h.query(lang)
	if err != nil {
		tree.Close()
		return nil, nil, err
	}

	lines := bytes.Split(src, []byte("\n"))
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	result := make(HighlightResult)
	for {
		if ctx.Err() != nil {
			tree.Close()
			return nil, nil, ctx.Err()
		}
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := captureNameToStyleName(query.CaptureNameForId(capture.Index))
			addCapture(result, lines, capture.Node.StartPoint(), capture.Node.EndPoint(), style)
		}
	}

	logger.DebugTagf("highlight", "%s: highlights on %d lines", lang.Name, len(result))
	return result, tree, nil
}

// addCapture splits a possibly multi-line capture into per-line rune ranges.
func addCapture(result HighlightResult, lines [][]byte, start, end sitter.Point, style string) {
	for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
		line := lines[row]
		from := 0
		if row == int(start.Row) {
			from = utils.ByteOffsetToRuneIndex(line, int(start.Column))
		}
		to := utf8.RuneCount(line)
		if row == int(end.Row) {
			to = utils.ByteOffsetToRuneIndex(line, int(end.Column))
		}
		if to <= from {
			continue
		}
		result[row] = append(result[row], types.StyledRange{StartCol: from, EndCol: to, StyleName: style})
	}
}

// captureNameToStyleName maps "keyword.control" to "keyword".
func captureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dot := strings.Index(captureName, "."); dot != -1 {
		return captureName[:dot]
	}
	return captureName
}

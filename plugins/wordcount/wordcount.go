// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/medit/internal/core/regionops"
	"github.com/bethropolis/medit/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount reports line, word and character counts of the selected text.
type WordCount struct {
	api plugin.EditorAPI
}

func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

// Stats are the counts of a piece of text. Chars are grapheme clusters.
type Stats struct {
	Lines int
	Words int
	Chars int
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d", s.Lines, s.Words, s.Chars)
}

// Count computes the stats of text. Empty text has zero lines.
func Count(text string) Stats {
	if text == "" {
		return Stats{}
	}
	return Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: countWords(text),
		Chars: uniseg.GraphemeClusterCount(text),
	}
}

// countWords counts the word segments that contain a letter or digit.
func countWords(text string) int {
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if strings.IndexFunc(word, isWordRune) >= 0 {
			count++
		}
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// executeWordCount counts the text of every non-empty region, or the whole
// document when nothing is selected.
func (p *WordCount) executeWordCount(args []string) error {
	v, ok := p.api.ActiveView()
	if !ok {
		return fmt.Errorf("wc: no active view")
	}

	regions := v.Selection().Regions()
	var texts []string
	for _, text := range regionops.Texts(v.Runes(), regions) {
		if text != "" {
			texts = append(texts, text)
		}
	}

	var total Stats
	scope := "document"
	if len(texts) == 0 {
		total = Count(string(v.Runes()))
	} else {
		scope = fmt.Sprintf("%d regions", len(texts))
		for _, text := range texts {
			s := Count(text)
			total.Lines += s.Lines
			total.Words += s.Words
			total.Chars += s.Chars
		}
	}
	p.api.SetStatusMessage("%s (%s)", total, scope)
	return nil
}

// Package regionops holds stateless transformations over a list of regions.
// Offsets are rune offsets into doc; inputs are never modified.
package regionops

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/medit/internal/types"
)

// SplitBySeparator splits every region at each occurrence of sep. Pieces
// between adjacent separators become empty regions. An empty sep splits
// into single runes. Empty input regions are kept as they are.
func SplitBySeparator(doc []rune, regions []types.Region, sep string) []types.Region {
	sepRunes := []rune(sep)
	var out []types.Region
	for _, r := range regions {
		if r.Empty() {
			out = append(out, r)
			continue
		}
		begin, end := clamp(doc, r)
		if len(sepRunes) == 0 {
			for i := begin; i < end; i++ {
				out = append(out, types.Region{Anchor: i, Active: i + 1})
			}
			continue
		}
		start := begin
		for i := begin; i+len(sepRunes) <= end; {
			if hasPrefix(doc[i:end], sepRunes) {
				out = append(out, types.Region{Anchor: start, Active: i})
				i += len(sepRunes)
				start = i
				continue
			}
			i++
		}
		out = append(out, types.Region{Anchor: start, Active: end})
	}
	return out
}

// SplitIntoLines splits every region at line breaks. The breaks themselves
// are not part of any resulting region.
func SplitIntoLines(doc []rune, regions []types.Region) []types.Region {
	return SplitBySeparator(doc, regions, "\n")
}

// NormalizeEnds makes every region forward when at least one is reversed,
// and reverses all of them otherwise.
func NormalizeEnds(regions []types.Region) []types.Region {
	anyReversed := false
	for _, r := range regions {
		if r.Reversed() {
			anyReversed = true
			break
		}
	}
	out := make([]types.Region, len(regions))
	for i, r := range regions {
		if anyReversed {
			out[i] = r.Forward()
		} else {
			out[i] = r.Flip()
		}
	}
	return out
}

// RemoveEmpty drops empty regions. When every region is empty the input is
// returned unchanged so the selection never disappears.
func RemoveEmpty(regions []types.Region) []types.Region {
	var out []types.Region
	for _, r := range regions {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return append([]types.Region(nil), regions...)
	}
	return out
}

// Strip trims whitespace from both ends of every region, keeping its
// direction. A region of only whitespace collapses to its active end.
func Strip(doc []rune, regions []types.Region) []types.Region {
	out := make([]types.Region, len(regions))
	for i, r := range regions {
		begin, end := clamp(doc, r)
		for begin < end && unicode.IsSpace(doc[begin]) {
			begin++
		}
		for end > begin && unicode.IsSpace(doc[end-1]) {
			end--
		}
		switch {
		case begin == end:
			out[i] = types.Cursor(r.Active)
		case r.Reversed():
			out[i] = types.Region{Anchor: end, Active: begin}
		default:
			out[i] = types.Region{Anchor: begin, Active: end}
		}
	}
	return out
}

// FindAll returns every non-empty match of re inside the non-empty regions,
// or inside the whole document when no region is non-empty.
func FindAll(doc []rune, regions []types.Region, re *regexp.Regexp) []types.Region {
	scopes := make([]types.Region, 0, len(regions))
	for _, r := range regions {
		if !r.Empty() {
			scopes = append(scopes, r)
		}
	}
	if len(scopes) == 0 {
		scopes = append(scopes, types.Region{Anchor: 0, Active: len(doc)})
	}

	var out []types.Region
	for _, scope := range scopes {
		begin, end := clamp(doc, scope)
		text := string(doc[begin:end])
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			from := begin + utf8.RuneCountInString(text[:loc[0]])
			to := from + utf8.RuneCountInString(text[loc[0]:loc[1]])
			out = append(out, types.Region{Anchor: from, Active: to})
		}
	}
	return out
}

// Texts returns the text of every region.
func Texts(doc []rune, regions []types.Region) []string {
	out := make([]string, len(regions))
	for i, r := range regions {
		begin, end := clamp(doc, r)
		out[i] = string(doc[begin:end])
	}
	return out
}

// Join concatenates region texts with sep.
func Join(doc []rune, regions []types.Region, sep string) string {
	return strings.Join(Texts(doc, regions), sep)
}

func clamp(doc []rune, r types.Region) (int, int) {
	return max(0, min(r.Begin(), len(doc))), max(0, min(r.End(), len(doc)))
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

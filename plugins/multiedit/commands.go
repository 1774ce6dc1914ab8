package multiedit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/medit/internal/core/regionops"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/types"
)

// Command names.
const (
	CmdJumpToLastRegion = "jump_to_last_region"
	CmdAddLastSelection = "add_last_selection"
	CmdSplitSelection   = "split_selection"
	CmdSplitIntoLines   = "split_selection_into_lines"
	CmdNormalizeEnds    = "normalize_region_ends"
	CmdRemoveEmpty      = "remove_empty_regions"
	CmdStripSelection   = "strip_selection"
	CmdSelectAllMatches = "select_all_matches"
)

func (p *MultiEdit) commands() map[string]plugin.CommandFunc {
	return map[string]plugin.CommandFunc{
		CmdJumpToLastRegion: p.withView(func(v plugin.View, _ []string) error {
			JumpToLastRegion(v)
			return nil
		}),
		CmdAddLastSelection: p.withView(func(v plugin.View, _ []string) error {
			if p.RestoreLastSelection(v) {
				p.api.SetStatusMessage("%d regions", v.Selection().Len())
			}
			return nil
		}),
		CmdSplitSelection: p.withView(p.splitSelection),
		CmdSplitIntoLines: p.withView(func(v plugin.View, _ []string) error {
			return p.replace(v, regionops.SplitIntoLines(v.Runes(), v.Selection().Regions()))
		}),
		CmdNormalizeEnds: p.withView(func(v plugin.View, _ []string) error {
			return p.replace(v, regionops.NormalizeEnds(v.Selection().Regions()))
		}),
		CmdRemoveEmpty: p.withView(func(v plugin.View, _ []string) error {
			return p.replace(v, regionops.RemoveEmpty(v.Selection().Regions()))
		}),
		CmdStripSelection: p.withView(func(v plugin.View, _ []string) error {
			return p.replace(v, regionops.Strip(v.Runes(), v.Selection().Regions()))
		}),
		CmdSelectAllMatches: p.withView(p.selectAllMatches),
	}
}

// withView runs fn against the active view. Without one the command is a no-op.
func (p *MultiEdit) withView(fn func(v plugin.View, args []string) error) plugin.CommandFunc {
	return func(args []string) error {
		v, ok := p.api.ActiveView()
		if !ok {
			return nil
		}
		return fn(v, args)
	}
}

func (p *MultiEdit) replace(v plugin.View, regions []types.Region) error {
	if len(regions) == 0 {
		return nil
	}
	v.Selection().Set(regions)
	return nil
}

// splitSelection splits by the first argument, or by the configured
// separator when called without arguments.
func (p *MultiEdit) splitSelection(v plugin.View, args []string) error {
	sep := p.separator()
	if len(args) > 0 {
		sep = strings.Join(args, " ")
	}
	regions := regionops.SplitBySeparator(v.Runes(), v.Selection().Regions(), sep)
	if err := p.replace(v, regions); err != nil {
		return err
	}
	p.api.SetStatusMessage("split into %d regions", v.Selection().Len())
	return nil
}

func (p *MultiEdit) selectAllMatches(v plugin.View, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s: missing pattern", CmdSelectAllMatches)
	}
	re, err := regexp.Compile(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("%s: %w", CmdSelectAllMatches, err)
	}
	matches := regionops.FindAll(v.Runes(), v.Selection().Regions(), re)
	if len(matches) == 0 {
		p.api.SetStatusMessage("no matches for %s", re)
		return nil
	}
	p.api.SetStatusMessage("%d matches", len(matches))
	return p.replace(v, matches)
}

// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/medit/internal/logger"
)

// Theme maps style names (UI elements and syntax captures) to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then its base name before the first dot, then
// "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

type palette struct {
	bar, fg, dim, orange, yellow, green, cyan, blue, caret tcell.Color
}

func build(name string, dark bool, p palette) *Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.fg)
	bar := tcell.StyleDefault.Background(p.bar).Foreground(p.fg)
	return &Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Selection":         base.Reverse(true),
			"Cursor":            tcell.StyleDefault.Background(p.caret).Foreground(tcell.ColorBlack),
			"LineNumber":        base.Foreground(p.dim),
			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(p.yellow),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarCommand":  bar.Foreground(p.green).Bold(true),

			"keyword":  base.Foreground(p.blue).Bold(true),
			"string":   base.Foreground(p.green),
			"comment":  base.Foreground(p.dim).Italic(true),
			"number":   base.Foreground(p.orange),
			"constant": base.Foreground(p.orange),
			"type":     base.Foreground(p.cyan),
			"function": base.Foreground(p.yellow),
		},
	}
}

// Dark is the default built-in theme.
func Dark() *Theme {
	return build("dark", true, palette{
		bar:    tcell.NewHexColor(0x2a2f38),
		fg:     tcell.NewHexColor(0xc5cdd9),
		dim:    tcell.NewHexColor(0x5c6370),
		orange: tcell.NewHexColor(0xd19a66),
		yellow: tcell.NewHexColor(0xe5c07b),
		green:  tcell.NewHexColor(0x98c379),
		cyan:   tcell.NewHexColor(0x56b6c2),
		blue:   tcell.NewHexColor(0x61afef),
		caret:  tcell.NewHexColor(0xc678dd),
	})
}

func Light() *Theme {
	return build("light", false, palette{
		bar:    tcell.NewHexColor(0xd8dee9),
		fg:     tcell.NewHexColor(0x383a42),
		dim:    tcell.NewHexColor(0xa0a1a7),
		orange: tcell.NewHexColor(0x986801),
		yellow: tcell.NewHexColor(0xc18401),
		green:  tcell.NewHexColor(0x50a14f),
		cyan:   tcell.NewHexColor(0x0184bc),
		blue:   tcell.NewHexColor(0x4078f2),
		caret:  tcell.NewHexColor(0xa626a4),
	})
}

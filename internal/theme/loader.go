// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/medit/internal/logger"
)

// styleDef is one [styles.<name>] table. Pointers tell unset from false.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Extend string              `toml:"extends"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadFile reads a theme file. The file name is used when it sets no name.
func LoadFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	t, err := Parse(string(data), name)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	return t, nil
}

// Parse decodes a TOML theme. A theme may extend "dark" or "light"; its
// styles then override the built-in ones. Styles inherit unset attributes
// from the theme's Default style. Styles that fail to parse are skipped.
func Parse(data, fallbackName string) (*Theme, error) {
	var tf themeFile
	md, err := toml.Decode(data, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tf.Name, undecoded)
	}
	if tf.Name == "" {
		tf.Name = fallbackName
	}

	theme := &Theme{Name: tf.Name, IsDark: tf.IsDark, Styles: make(map[string]tcell.Style)}
	switch strings.ToLower(tf.Extend) {
	case "":
	case "dark":
		theme.Styles = Dark().Styles
		theme.IsDark = true
	case "light":
		theme.Styles = Light().Styles
	default:
		return nil, fmt.Errorf("unknown base theme '%s'", tf.Extend)
	}

	baseStyle, ok := theme.Styles["Default"]
	if !ok {
		baseStyle = tcell.StyleDefault
	}
	if def, ok := tf.Styles["Default"]; ok {
		if baseStyle, err = convertStyle(def, baseStyle); err != nil {
			return nil, fmt.Errorf("style 'Default': %w", err)
		}
	}
	theme.Styles["Default"] = baseStyle

	for name, def := range tf.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

func convertStyle(def styleDef, style tcell.Style) (tcell.Style, error) {
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color: %w", err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, a tcell color name, "reset" or "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}

// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/medit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Editor    EditorConfig    `toml:"editor"`
	Multiedit MultieditConfig `toml:"multiedit"`
	// Plugins holds free-form tables for other plugins, keyed by plugin name.
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ScrollOff       int    `toml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard"`
	Theme           string `toml:"theme"`
}

// MultieditConfig configures the multi-selection plugin.
type MultieditConfig struct {
	SplitSeparator *string `toml:"split_separator"` // nil means unset; "" splits per character
	MaxHistory     int     `toml:"max_history"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	sep := DefaultSplitSeparator
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			Theme:           DefaultTheme,
		},
		Multiedit: MultieditConfig{
			SplitSeparator: &sep,
			MaxHistory:     DefaultMaxHistory,
		},
	}
}

// DefaultPath is ~/.config/medit/config.toml, or "" when the user config
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	var undecoded []string
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate resets out of range values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Multiedit.SplitSeparator == nil {
		c.Multiedit.SplitSeparator = defaults.Multiedit.SplitSeparator
	}
	if c.Multiedit.MaxHistory < 0 {
		c.Multiedit.MaxHistory = defaults.Multiedit.MaxHistory
	}
}

// Load merges defaults, the TOML file at configFilePath (DefaultPath when
// empty) and set flags, in that order. Unknown keys are returned so the
// caller can warn about them once the logger is up.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var undecoded []string
	if path != "" {
		var err error
		undecoded, err = loadFromFile(path, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, undecoded, nil
}

// PluginValue looks up a setting for a plugin. The multiedit table is typed,
// every other plugin reads from [plugins.<name>].
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	if plugin == "multiedit" {
		switch key {
		case "split_separator":
			if c.Multiedit.SplitSeparator == nil {
				return nil, false
			}
			return *c.Multiedit.SplitSeparator, true
		case "max_history":
			return c.Multiedit.MaxHistory, true
		}
		return nil, false
	}
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

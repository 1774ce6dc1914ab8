package config

import "time"

// Base application details
const AppName = "medit"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "medit.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Highlighting waits this long after the last edit before reparsing.
const HighlightDebounce = 150 * time.Millisecond

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = false
const DefaultTheme = "dark"

// Multi-selection defaults.
const DefaultSplitSeparator = ","
const DefaultMaxHistory = 0 // unbounded

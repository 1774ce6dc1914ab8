// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/medit/internal/logger"
)

// Manager holds the known themes and the active one. Names are matched
// case-insensitively.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme
	activeTheme *Theme
}

// NewManager knows the built-in themes, with "dark" active.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.Add(Dark())
	m.Add(Light())
	m.activeTheme = m.themes["dark"]
	return m
}

// Add registers t, replacing a theme of the same name.
func (m *Manager) Add(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Debugf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadDir adds every .toml theme in dir. A missing dir is not an error.
// It returns the number of themes loaded.
func (m *Manager) LoadDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		t, err := LoadFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.Add(t)
		loaded++
	}
	logger.Infof("Loaded %d custom themes from '%s'.", loaded, dir)
	return loaded, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name, or loads and activates a .toml path.
func (m *Manager) SetTheme(name string) error {
	if strings.HasSuffix(strings.ToLower(name), ".toml") {
		t, err := LoadFile(name)
		if err != nil {
			return err
		}
		m.Add(t)
		name = t.Name
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the theme names, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	t, ok := m.themes[strings.ToLower(name)]
	return t, ok
}

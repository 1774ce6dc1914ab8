// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
	closed bool
}

// New creates and initializes the terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s, which may be a simulation screen.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen. Later calls do nothing.
func (t *TUI) Close() {
	if t.screen != nil && !t.closed {
		t.closed = true
		t.screen.Fini()
	}
}

func (t *TUI) SetStyle(style tcell.Style) { t.screen.SetStyle(style) }

// PollEvent blocks for the next event. It returns nil after Close.
func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }

// PostEvent wakes up PollEvent from another goroutine.
func (t *TUI) PostEvent(ev tcell.Event) error { return t.screen.PostEvent(ev) }

func (t *TUI) Clear() { t.screen.Clear() }

func (t *TUI) Show() { t.screen.Show() }

func (t *TUI) Sync() { t.screen.Sync() }

func (t *TUI) Size() (int, int) { return t.screen.Size() }

// Screen provides direct access for components drawing themselves.
func (t *TUI) Screen() tcell.Screen { return t.screen }

package core

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/medit/internal/logger"
)

// Clipboard is a text register that can mirror to the system clipboard.
// System failures (no X server, no pbcopy) fall back to the internal register.
type Clipboard struct {
	mu       sync.Mutex
	system   bool
	register string
}

// NewClipboard creates a register; system selects the OS clipboard.
func NewClipboard(system bool) *Clipboard {
	return &Clipboard{system: system && !clipboard.Unsupported}
}

// Write stores text in the register, and in the system clipboard when enabled.
func (c *Clipboard) Write(text string) error {
	c.mu.Lock()
	c.register = text
	system := c.system
	c.mu.Unlock()

	if !system {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.WarnTagf("clipboard", "system clipboard write failed, using internal register: %v", err)
	}
	return nil
}

// Read returns the system clipboard when enabled and readable, the register otherwise.
func (c *Clipboard) Read() string {
	c.mu.Lock()
	register := c.register
	system := c.system
	c.mu.Unlock()

	if system {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text
		}
		logger.WarnTagf("clipboard", "system clipboard read failed: %v", err)
	}
	return register
}

// CopyRegions joins the text of every region of v with newlines and writes it.
// It returns the number of regions copied.
func (c *Clipboard) CopyRegions(v *View) (int, error) {
	regions := v.Selection().Regions()
	parts := make([]string, 0, len(regions))
	for _, r := range regions {
		if r.Empty() {
			continue
		}
		parts = append(parts, v.Text(r))
	}
	if len(parts) == 0 {
		return 0, nil
	}
	return len(parts), c.Write(strings.Join(parts, "\n"))
}

// PasteInto inserts the register at every region of v. When the text has one
// line per region, each region receives its own line.
func (c *Clipboard) PasteInto(v *View) error {
	text := c.Read()
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && len(lines) == v.Selection().Len() {
		return v.InsertPerRegion(lines)
	}
	return v.InsertText(text)
}

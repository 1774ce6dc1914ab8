// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style // modified indicator
	StyleMessage   tcell.Style // temporary messages
	StyleCommand   tcell.Style // command line input
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar is the last screen line. Setters may be called from any goroutine.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath    string
	isModified  bool
	cursorPos   types.Position
	regionCount int
	editorMode  string
	commandLine string
	inCommand   bool

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetStyles swaps the colors, keeping the timeout.
func (sb *StatusBar) SetStyles(def, modified, message, command tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config.StyleDefault = def
	sb.config.StyleModified = modified
	sb.config.StyleMessage = message
	sb.config.StyleCommand = command
}

func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetSelectionInfo updates the primary caret position and the region count.
func (sb *StatusBar) SetSelectionInfo(pos types.Position, regions int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.regionCount = regions
}

func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetCommandLine shows the command being typed. It wins over messages.
func (sb *StatusBar) SetCommandLine(text string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandLine = text
	sb.inCommand = active
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, or "".
func (sb *StatusBar) Message() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.messageActive() {
		return sb.tempMessage
	}
	return ""
}

// messageActive requires the lock.
func (sb *StatusBar) messageActive() bool {
	return sb.tempMessage != "" && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
}

// Text builds the line shown when no message or command is active.
func (sb *StatusBar) Text() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.defaultText()
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	regions := ""
	if sb.regionCount > 1 {
		regions = fmt.Sprintf(" (%d regions)", sb.regionCount)
	}
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s%s",
		fPath, modifiedIndicator, sb.cursorPos.Line+1, sb.cursorPos.Col+1, regions, modeIndicator)
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	var text string
	var style tcell.Style
	switch {
	case sb.inCommand:
		text, style = ":"+sb.commandLine, sb.config.StyleCommand
	case sb.messageActive():
		text, style = sb.tempMessage, sb.config.StyleMessage
	default:
		if sb.tempMessage != "" {
			sb.tempMessage = ""
			sb.tempMessageTime = time.Time{}
		}
		text, style = sb.defaultText(), sb.config.StyleDefault
		if sb.isModified {
			style = sb.config.StyleModified
		}
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}

// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/highlighter"
	"github.com/bethropolis/medit/internal/input"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/modehandler"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/statusbar"
	"github.com/bethropolis/medit/internal/theme"
	"github.com/bethropolis/medit/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
// Key handling, command execution, scheduled tasks and drawing all run on
// the goroutine that calls Run.
type App struct {
	cfg                 *config.Config
	tuiManager          *tui.TUI
	workspace           *core.Workspace
	clipboard           *core.Clipboard
	statusBar           *statusbar.StatusBar
	eventManager        *event.Manager
	pluginManager       *plugin.Manager
	modeHandler         *modehandler.ModeHandler
	themeManager        *theme.Manager
	highlightingManager *HighlightingManager
	editorAPI           *appEditorAPI

	quit          chan struct{}
	redrawRequest chan struct{}
	tasks         chan func()
	events        chan tcell.Event
}

// NewApp creates the editor on the real terminal and opens files.
// With no files a single scratch view is opened.
func NewApp(cfg *config.Config, files []string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, files, tuiManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, files []string, tuiManager *tui.TUI) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	eventManager := event.NewManager()
	workspace := core.NewWorkspace(eventManager, cfg.Editor.ScrollOff, cfg.Editor.TabWidth)
	statusBar := statusbar.New(statusbar.DefaultConfig())
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Workspace:      workspace,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		workspace:     workspace,
		clipboard:     core.NewClipboard(cfg.Editor.SystemClipboard),
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  theme.NewManager(),
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
		tasks:         make(chan func(), 64),
		events:        make(chan tcell.Event, 16),
	}

	a.loadThemes()
	a.highlightingManager = NewHighlightingManager(highlighter.NewHighlighter(), a.Schedule, a.requestRedraw)
	a.editorAPI = newEditorAPI(a)

	a.subscribeEvents()

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	registerAppCommands(a)
	if failed := a.pluginManager.InitializePlugins(a.editorAPI); len(failed) > 0 {
		logger.Warnf("App: plugins failed to initialize: %v", failed)
	}

	if len(files) == 0 {
		files = []string{""}
	}
	for _, f := range files {
		if _, err := a.workspace.Open(f); err != nil {
			a.pluginManager.ShutdownPlugins()
			return nil, err
		}
	}
	// the first file named on the command line is the one shown
	if len(files) > 1 {
		a.workspace.Cycle(1)
	}

	width, height := tuiManager.Size()
	a.resizeViews(width, height)
	return a, nil
}

// loadThemes adds user themes and activates the configured one.
func (a *App) loadThemes() {
	if path := config.DefaultPath(); path != "" {
		dir := filepath.Join(filepath.Dir(path), config.ThemesDirName)
		if _, err := a.themeManager.LoadDir(dir); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
	if a.cfg.Editor.Theme != "" {
		if err := a.themeManager.SetTheme(a.cfg.Editor.Theme); err != nil {
			logger.Warnf("App: theme '%s' unavailable, keeping '%s': %v", a.cfg.Editor.Theme, a.themeManager.Current().Name, err)
		}
	}
	a.applyTheme()
}

// applyTheme pushes the active theme's styles to the screen and status bar.
func (a *App) applyTheme() {
	t := a.themeManager.Current()
	a.tuiManager.SetStyle(t.GetStyle("Default"))
	a.statusBar.SetStyles(
		t.GetStyle("StatusBar"),
		t.GetStyle("StatusBarModified"),
		t.GetStyle("StatusBarMessage"),
		t.GetStyle("StatusBarCommand"),
	)
}

// Run starts the application's main loop. It returns once quit is signalled.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.highlightingManager.Shutdown()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("medit - Ctrl+P Command | Ctrl+S Save | Ctrl+Q Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.events:
			if a.handleTerminalEvent(ev) {
				a.requestRedraw()
			}
		case task := <-a.tasks:
			task()
			a.requestRedraw()
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events to the main loop until the screen is finalized.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleTerminalEvent reports whether the screen needs a redraw.
func (a *App) handleTerminalEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.resizeViews(ev.Size())
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

func (a *App) resizeViews(width, height int) {
	for _, v := range a.workspace.Views() {
		v.SetViewSize(width, height)
	}
}

// Schedule queues fn for the main loop. It may be called from any goroutine;
// once the app has quit the task is dropped.
func (a *App) Schedule(fn func()) {
	select {
	case <-a.quit:
		logger.Debugf("App: dropping task scheduled after quit")
		return
	default:
	}
	select {
	case a.tasks <- fn:
	case <-a.quit:
		logger.Debugf("App: dropping task scheduled after quit")
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
)

var errNoActiveView = errors.New("no active view")

// registerAppCommands registers the host's built-in commands.
func registerAppCommands(app *App) {
	commands := map[string]plugin.CommandFunc{
		"bn":              app.cmdNextView,
		"bp":              app.cmdPrevView,
		"e":               app.cmdEdit,
		"close":           app.closeCommand(false),
		"close!":          app.closeCommand(true),
		"w":               app.cmdWrite,
		"wq":              app.cmdWriteQuit,
		"q":               app.quitCommand(false),
		"q!":              app.quitCommand(true),
		"copy_selections": app.cmdCopySelections,
		"paste":           app.cmdPaste,
		"theme":           app.cmdTheme,
		"themes":          app.cmdThemes,
		"commands":        app.cmdCommands,
	}
	for name, fn := range commands {
		if err := app.editorAPI.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

func (a *App) activeView() (*core.View, error) {
	v := a.workspace.Active()
	if v == nil {
		return nil, errNoActiveView
	}
	return v, nil
}

func (a *App) cmdNextView(args []string) error {
	a.workspace.Cycle(1)
	return nil
}

func (a *App) cmdPrevView(args []string) error {
	a.workspace.Cycle(-1)
	return nil
}

// cmdEdit switches to the view of a file, opening it when needed.
func (a *App) cmdEdit(args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: e <file>")
	}
	if v, ok := a.workspace.Find(args[0]); ok {
		return a.workspace.Activate(v.ID())
	}
	if _, err := a.workspace.Open(args[0]); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Opened %s", args[0])
	return nil
}

// closeCommand closes the active view. Closing the last view leaves an
// empty scratch view behind.
func (a *App) closeCommand(force bool) plugin.CommandFunc {
	return func(args []string) error {
		v, err := a.activeView()
		if err != nil {
			return err
		}
		if v.IsModified() && !force {
			return fmt.Errorf("no write since last change (use :close! to discard)")
		}
		if err := a.workspace.Close(v.ID()); err != nil {
			return err
		}
		if len(a.workspace.Views()) == 0 {
			if _, err := a.workspace.Open(""); err != nil {
				return err
			}
		}
		return nil
	}
}

// cmdWrite saves the active view, under a new name when one is given.
func (a *App) cmdWrite(args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	path := ""
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}
	if err := v.SaveAs(path); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Buffer saved to %s", v.FilePath())
	return nil
}

func (a *App) cmdWriteQuit(args []string) error {
	if err := a.cmdWrite(args); err != nil {
		return err
	}
	a.modeHandler.RequestQuit(false)
	return nil
}

func (a *App) quitCommand(force bool) plugin.CommandFunc {
	return func(args []string) error {
		a.modeHandler.RequestQuit(force)
		return nil
	}
}

// cmdCopySelections joins the selected texts of the active view with newlines.
func (a *App) cmdCopySelections(args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	n, err := a.clipboard.CopyRegions(v)
	if err != nil {
		return err
	}
	if n == 0 {
		a.statusBar.SetTemporaryMessage("Nothing to copy")
		return nil
	}
	a.statusBar.SetTemporaryMessage("Copied %d regions", n)
	return nil
}

func (a *App) cmdPaste(args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	return a.clipboard.PasteInto(v)
}

func (a *App) cmdTheme(args []string) error {
	if len(args) == 0 {
		a.statusBar.SetTemporaryMessage("Current theme: %s", a.themeManager.Current().Name)
		return nil
	}
	name := strings.Join(args, " ")
	if err := a.themeManager.SetTheme(name); err != nil {
		return fmt.Errorf("%w. Available: %s", err, strings.Join(a.themeManager.ListThemes(), ", "))
	}
	a.applyTheme()
	a.statusBar.SetTemporaryMessage("Theme set to: %s", a.themeManager.Current().Name)
	return nil
}

func (a *App) cmdThemes(args []string) error {
	a.statusBar.SetTemporaryMessage("Available themes: %s", strings.Join(a.themeManager.ListThemes(), ", "))
	return nil
}

func (a *App) cmdCommands(args []string) error {
	a.statusBar.SetTemporaryMessage("%s", strings.Join(a.modeHandler.Commands(), " "))
	return nil
}

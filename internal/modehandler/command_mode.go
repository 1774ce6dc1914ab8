package modehandler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/bethropolis/medit/internal/input"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
)

var errUnterminatedQuote = errors.New("unterminated quoted argument")

// handleActionCommand edits and runs the command line.
func (mh *ModeHandler) handleActionCommand(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer = append(mh.cmdBuffer, ae.Rune)
	case input.ActionInsertTab:
		mh.cmdBuffer = append(mh.cmdBuffer, '\t')
	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.setMode(ModeNormal)
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.setMode(ModeNormal)
		mh.ExecuteCommandLine(line)
		return true
	case input.ActionCollapseSelection, input.ActionQuit:
		mh.setMode(ModeNormal)
		return true
	default:
		return false
	}
	mh.statusBar.SetCommandLine(string(mh.cmdBuffer), true)
	return true
}

// ExecuteCommandLine parses "name args..." and runs the command, reporting
// problems in the status bar.
func (mh *ModeHandler) ExecuteCommandLine(line string) {
	name, args, err := parseCommandLine(line)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Invalid command: %v", err)
		return
	}
	if name == "" {
		return
	}
	mh.runCommand(name, args)
}

func (mh *ModeHandler) runCommand(name string, args []string) {
	cmdFunc, exists := mh.commands[name]
	if !exists {
		if suggestion := mh.suggester.SpellCheck(name); suggestion != "" && suggestion != name {
			mh.statusBar.SetTemporaryMessage("Unknown command: %s (did you mean %s?)", name, suggestion)
			return
		}
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return
	}

	logger.DebugTagf("command", "executing ':%s' with args %q", name, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid command name %q", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s': %w", name, plugin.ErrDuplicateCommand)
	}
	mh.commands[name] = cmdFunc
	mh.suggester.TrainWord(name)
	logger.DebugTagf("command", "registered ':%s'", name)
	return nil
}

// Commands lists the registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseCommandLine splits on whitespace. An argument starting with a double
// quote runs to the closing quote and is unquoted like a Go string, so
// separators with spaces can be given as ", ".
func parseCommandLine(line string) (string, []string, error) {
	var fields []string
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	for rest != "" {
		var field string
		if rest[0] == '"' {
			end := closingQuote(rest)
			if end < 0 {
				return "", nil, errUnterminatedQuote
			}
			unquoted, err := strconv.Unquote(rest[:end+1])
			if err != nil {
				return "", nil, fmt.Errorf("argument %s: %w", rest[:end+1], err)
			}
			field, rest = unquoted, rest[end+1:]
		} else {
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end < 0 {
				end = len(rest)
			}
			field, rest = rest[:end], rest[end:]
		}
		fields = append(fields, field)
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}
	if len(fields) == 0 {
		return "", nil, nil
	}
	return fields[0], fields[1:], nil
}

// closingQuote returns the index of the quote ending the string that starts
// at s[0], or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

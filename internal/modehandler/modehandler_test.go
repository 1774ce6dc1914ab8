package modehandler

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/core"
	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/input"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/internal/statusbar"
	"github.com/bethropolis/medit/internal/types"
)

type fixture struct {
	mh   *ModeHandler
	ws   *core.Workspace
	sb   *statusbar.StatusBar
	mgr  *event.Manager
	quit chan struct{}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mgr := event.NewManager()
	ws := core.NewWorkspace(mgr, 0, 4)
	sb := statusbar.New(statusbar.DefaultConfig())
	quit := make(chan struct{})
	mh := New(Config{
		Workspace:      ws,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   mgr,
		StatusBar:      sb,
		QuitSignal:     quit,
	})
	return &fixture{mh: mh, ws: ws, sb: sb, mgr: mgr, quit: quit}
}

func (f *fixture) open(t *testing.T, text string) *core.View {
	t.Helper()
	v, err := f.ws.Open("")
	require.NoError(t, err)
	v.SetText(text)
	return v
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey { return tcell.NewEventKey(k, 0, mod) }

func typeText(mh *ModeHandler, s string) {
	for _, r := range s {
		mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTypingEditsEveryCursor(t *testing.T) {
	f := newFixture(t)
	v := f.open(t, "ab\ncd")

	assert.True(t, f.mh.HandleKeyEvent(key(tcell.KeyDown, tcell.ModAlt)))
	assert.Equal(t, 2, v.Selection().Len())

	typeText(f.mh, "x")
	assert.Equal(t, "xab\nxcd", string(v.Runes()))
}

func TestShiftArrowExtends(t *testing.T) {
	f := newFixture(t)
	v := f.open(t, "hello")

	f.mh.HandleKeyEvent(key(tcell.KeyRight, tcell.ModShift))
	f.mh.HandleKeyEvent(key(tcell.KeyRight, tcell.ModShift))
	assert.Equal(t, []types.Region{{Anchor: 0, Active: 2}}, v.Selection().Regions())

	f.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.Equal(t, []types.Region{types.Cursor(2)}, v.Selection().Regions())
}

func TestNoActiveViewIgnoresEdits(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))
}

func TestCommandModeTypingAndExecution(t *testing.T) {
	f := newFixture(t)
	var got []string
	require.NoError(t, f.mh.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}))

	var modes []string
	f.mgr.Subscribe(event.TypeModeChanged, func(e event.Event) bool {
		modes = append(modes, e.Data.(event.ModeChangedData).Mode)
		return false
	})

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	require.Equal(t, ModeCommand, f.mh.CurrentMode())
	typeText(f.mh, `echo "a, b"  c`)
	f.mh.HandleKeyEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	typeText(f.mh, "d")
	assert.Equal(t, `echo "a, b"  d`, f.mh.CommandBuffer())

	f.mh.HandleKeyEvent(key(tcell.KeyEnter, tcell.ModNone))
	assert.Equal(t, ModeNormal, f.mh.CurrentMode())
	assert.Equal(t, []string{"a, b", "d"}, got)
	assert.Equal(t, []string{"COMMAND", "NORMAL"}, modes)
}

func TestCommandModeCancel(t *testing.T) {
	f := newFixture(t)
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	typeText(f.mh, "abc")
	f.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.Equal(t, ModeNormal, f.mh.CurrentMode())
	assert.Equal(t, "", f.mh.CommandBuffer())

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	f.mh.HandleKeyEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Equal(t, ModeNormal, f.mh.CurrentMode(), "backspace on an empty line leaves command mode")
}

func TestKeyBoundCommand(t *testing.T) {
	f := newFixture(t)
	ran := false
	require.NoError(t, f.mh.RegisterCommand("jump_to_last_region", func([]string) error {
		ran = true
		return nil
	}))
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlL, tcell.ModCtrl))
	assert.True(t, ran)
}

func TestCommandErrorsGoToStatusBar(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mh.RegisterCommand("fail", func([]string) error { return errors.New("boom") }))

	f.mh.ExecuteCommandLine("fail")
	assert.Equal(t, "Error executing command 'fail': boom", f.sb.Message())

	f.mh.ExecuteCommandLine(`fail "open`)
	assert.Contains(t, f.sb.Message(), "Invalid command")
}

func TestUnknownCommandSuggestion(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"jump_to_last_region", "add_last_selection", "split_selection"} {
		require.NoError(t, f.mh.RegisterCommand(name, func([]string) error { return nil }))
	}

	f.mh.ExecuteCommandLine("jump_to_last_regin")
	assert.Equal(t, "Unknown command: jump_to_last_regin (did you mean jump_to_last_region?)", f.sb.Message())

	f.mh.ExecuteCommandLine("zzz")
	assert.Equal(t, "Unknown command: zzz", f.sb.Message())
}

func TestRegisterCommandValidation(t *testing.T) {
	f := newFixture(t)
	noop := func([]string) error { return nil }
	require.NoError(t, f.mh.RegisterCommand("w", noop))
	assert.ErrorIs(t, f.mh.RegisterCommand("w", noop), plugin.ErrDuplicateCommand)
	assert.Error(t, f.mh.RegisterCommand("", noop))
	assert.Error(t, f.mh.RegisterCommand("two words", noop))
	assert.Equal(t, []string{"w"}, f.mh.Commands())
}

func TestQuitAsksOnceWhenModified(t *testing.T) {
	f := newFixture(t)
	v := f.open(t, "")
	require.NoError(t, v.InsertText("x"))

	assert.False(t, f.mh.RequestQuit(false))
	select {
	case <-f.quit:
		t.Fatal("quit signalled with unsaved changes")
	default:
	}

	assert.True(t, f.mh.RequestQuit(false))
	_, open := <-f.quit
	assert.False(t, open)
	assert.True(t, f.mh.RequestQuit(true), "quitting twice is safe")
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		args    []string
		wantErr bool
	}{
		{"", "", nil, false},
		{"   ", "", nil, false},
		{"w", "w", []string{}, false},
		{"e  file.go ", "e", []string{"file.go"}, false},
		{`split_selection ", "`, "split_selection", []string{", "}, false},
		{`split_selection ""`, "split_selection", []string{""}, false},
		{`split_selection "\t"`, "split_selection", []string{"\t"}, false},
		{`x "say \"hi\"" y`, "x", []string{`say "hi"`, "y"}, false},
		{`x "open`, "", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			name, args, err := parseCommandLine(tc.line)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.args, args)
		})
	}
}

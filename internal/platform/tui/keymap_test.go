package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/codejam/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		typed  int
	}{
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNext, 0},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionNext, 0},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrev, 0},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionPrev, 0},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionBuy, 0},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, 0},
		{"ctrl+p", tea.KeyMsg{Type: tea.KeyCtrlP}, core.ActionPause, 0},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, core.ActionRestart, 0},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, 0},
		{"letter", runes("a"), core.ActionNone, 1},
		{"q is typing", runes("q"), core.ActionNone, 1},
		{"several runes", runes("abc"), core.ActionNone, 3},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionNone, 1},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted"), Paste: true}, core.ActionNone, 0},
		{"other control key", tea.KeyMsg{Type: tea.KeyCtrlX}, core.ActionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, typed := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if typed != tt.typed {
				t.Errorf("typed = %d, want %d", typed, tt.typed)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runes("ab"), &frame) {
		t.Error("typing must not quit")
	}
	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame) {
		t.Error("enter must not quit")
	}
	if frame.Typed != 2 {
		t.Errorf("Typed = %d, want 2", frame.Typed)
	}
	if !frame.Has(core.ActionBuy) {
		t.Error("expected Buy in frame")
	}
	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c must quit")
	}

	frame.Clear()
	if frame.Typed != 0 || frame.Has(core.ActionBuy) {
		t.Error("Clear() left input behind")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("q"), MenuActionQuit},
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

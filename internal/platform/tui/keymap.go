package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/codejam/internal/core"
)

// EditorKeyMap defines the key bindings of the editor screen.
// Every printable key is typing, so commands live on control keys.
type EditorKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Buy     key.Binding
	Pause   key.Binding
	Back    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Buy, k.Pause, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Buy},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next upgrade"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev upgrade"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buy"),
		),
		Pause: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "new jam"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to editor actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys EditorKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultEditorKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() EditorKeyMap {
	return km.keys
}

// MapKey translates a key message to an action, or to a count of typed
// keystrokes when the key is printable.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, typed int) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, km.keys.Next):
		return core.ActionNext, 0
	case key.Matches(msg, km.keys.Prev):
		return core.ActionPrev, 0
	case key.Matches(msg, km.keys.Buy):
		return core.ActionBuy, 0
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, 0
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, 0
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, 0
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			// Pasting is not typing.
			return core.ActionNone, 0
		}
		return core.ActionNone, len(msg.Runes)
	case tea.KeySpace:
		return core.ActionNone, 1
	}

	return core.ActionNone, 0
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, typed := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	frame.Type(typed)
	return action == core.ActionQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

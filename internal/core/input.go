package core

// Action represents a semantic player action, abstracted from physical key presses.
// Typing keys are not actions: they are forwarded as typed characters.
type Action int

const (
	ActionNone     Action = iota
	ActionNext            // Tab, Down - select next offered upgrade
	ActionPrev            // Shift+Tab, Up - select previous offered upgrade
	ActionBuy             // Enter - buy the selected upgrade
	ActionBack            // Esc - leave the current screen
	ActionRestart         // Ctrl+R - start a new session from the results screen
	ActionQuit            // Ctrl+C - exit
	ActionPause           // Ctrl+P - pause/unpause the simulation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionBuy:
		return "Buy"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input of one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Typed counts typing keystrokes received this frame.
	Typed int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Type records n typing keystrokes.
func (f *InputFrame) Type(n int) {
	if n > 0 {
		f.Typed += n
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Typed = 0
}

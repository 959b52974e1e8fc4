package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// screen is the part of a session currently shown.
type screen int

const (
	screenMenu screen = iota
	screenEditor
	screenBoard
)

// SessionModel manages the full flow: menu -> jam -> menu, and
// menu -> results board -> menu. Used for SSH and local menu sessions.
type SessionModel struct {
	opts     Options
	screen   screen
	menu     MenuModel
	editor   EditorModel
	board    BoardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	opts.QuitOnBack = false
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Store, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenEditor:
		return m.updateEditor(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// A stale tick from a jam that was left; drop it.
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	choice := m.menu.Selected()
	if choice == MenuNone {
		return m, cmd
	}

	m.opts.Runtime = m.menu.Config()
	switch choice {
	case MenuPlay:
		editor, err := NewEditorModel(m.opts)
		if err != nil {
			m.opts.Logger.Error("cannot start jam", "error", err)
			m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
			return m, nil
		}
		m.editor = editor
		m.screen = screenEditor
		return m, m.editor.Init()

	case MenuResults:
		m.board = NewBoardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenBoard
		return m, m.board.Init()
	}

	return m, nil
}

// updateEditor handles updates when a jam is running.
func (m SessionModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.editor.Update(msg)
	if editor, ok := newModel.(EditorModel); ok {
		m.editor = editor
	}

	if m.editor.BackToMenu() {
		return m.toMenu()
	}

	if m.editor.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateBoard handles updates when the results board is shown.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(BoardModel); ok {
		m.board = board
	}

	if m.board.IsGoingBack() {
		return m.toMenu()
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenEditor:
		return m.editor.View()
	case screenBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true if user requested to quit.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

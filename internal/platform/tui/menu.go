package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/codejam/internal/core"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/storage"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuResults
	MenuQuit
)

type menuItem struct {
	choice MenuChoice
	title  string
	hint   string
}

var defaultMenuItems = []menuItem{
	{MenuPlay, "Start a jam", "A fresh editor, a full clock and no upgrades."},
	{MenuResults, "Results", "Every submitted jam, best first."},
	{MenuQuit, "Quit", "Log off."},
}

// MenuModel is the title screen.
type MenuModel struct {
	items     []menuItem
	cursor    int
	width     int
	height    int
	best      float64 // 0 when nothing is on record
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	choice    MenuChoice
}

// NewMenuModel builds the title screen. The store is only read for the
// best overall score and may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     defaultMenuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.BestOverall(""); err == nil {
			m.best = best
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

// handleKey moves the cursor with wrap-around. Picking an item ends the
// menu program; the caller reads Selected.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = (m.cursor - 1 + n) % n
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % n
	case MenuActionSelect:
		m.choice = m.items[m.cursor].choice
		if m.choice == MenuQuit {
			m.quitting = true
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		statusStyle.Render("  C O D E J A M  "),
		"",
		"Type code. Buy upgrades. Submit before the judges get bored.",
		"",
	}
	for i, item := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		lines = append(lines, marker+item.title)
	}
	lines = append(lines, "", dimStyle.Render(m.items[m.cursor].hint))

	if m.best > 0 {
		lines = append(lines, "", fmt.Sprintf("Best overall: %.2f %s", m.best, starString(economy.Stars(m.best))))
	}
	lines = append(lines, "", dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"))

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the picked item, or MenuNone while the menu is open.
func (m MenuModel) Selected() MenuChoice {
	return m.choice
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

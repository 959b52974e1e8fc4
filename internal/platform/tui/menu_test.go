package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/codejam/internal/core"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/storage"
)

func sendMenu(m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != len(m.items)-1 {
		t.Errorf("up from the top: cursor = %d", m.cursor)
	}
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Errorf("down from the bottom: cursor = %d", m.cursor)
	}
	if m.Selected() != MenuNone {
		t.Errorf("nothing picked yet, Selected() = %v", m.Selected())
	}
}

func TestMenuSelect(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		want  MenuChoice
		quit  bool
	}{
		{"play", 0, MenuPlay, false},
		{"results", 1, MenuResults, false},
		{"quit", 2, MenuQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, core.DefaultConfig())
			for range tt.downs {
				m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
			}
			m, cmd := sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
			if m.Selected() != tt.want {
				t.Errorf("Selected() = %v, expected %v", m.Selected(), tt.want)
			}
			if m.IsQuitting() != tt.quit {
				t.Errorf("IsQuitting() = %v", m.IsQuitting())
			}
			if cmd == nil {
				t.Error("picking an item should end the menu")
			}
		})
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var scores economy.Scores
	scores[economy.ScoreOverall] = 3.75
	if _, err := store.SaveResult(storage.NewResult("ada", "play", 1, economy.State{}, scores, 10)); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	m, _ = sendMenu(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.Config().ScreenW != 100 {
		t.Errorf("resize not recorded: %+v", m.Config())
	}

	view := m.View()
	if !strings.Contains(view, "Best overall: 3.75") {
		t.Errorf("view lacks the best score:\n%s", view)
	}
	if !strings.Contains(view, defaultMenuItems[0].hint) {
		t.Errorf("view lacks the hint of the highlighted item:\n%s", view)
	}
}

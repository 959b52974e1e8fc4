package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/storage"
)

// Offers are sorted by name, so Coffee is always first and Submit second.
const editorYAML = `
session:
  initial_lines: 100
  offer_slots: 2
  chars_per_key: 1
  max_spawn_visuals: 8
upgrades:
  - kind: coffee
    name: Coffee
    base_cost: 10
    cost_scale_factor: 1
    weight: 1
    install:
      - { effect: spawn_entities, amount: 3 }
  - kind: submit
    name: Submit
    base_cost: 50
    cost_scale_factor: 1
    weight: 1
    remaining: 1
    install:
      - { effect: submit }
`

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg, err := config.Parse([]byte(editorYAML))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return Options{
		Game:    cfg,
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 7},
		Player:  "tester",
		Filler:  "ab\n",
	}
}

func newTestEditor(t *testing.T, opts Options) EditorModel {
	t.Helper()
	m, err := NewEditorModel(opts)
	if err != nil {
		t.Fatalf("NewEditorModel() failed: %v", err)
	}
	return m
}

func send(t *testing.T, m EditorModel, msg tea.Msg) (EditorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	em, ok := next.(EditorModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return em, cmd
}

func tick(t *testing.T, m EditorModel) (EditorModel, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg(time.Now()))
}

func TestEditorTypingAddsLines(t *testing.T) {
	m := newTestEditor(t, testOptions(t))

	m, _ = send(t, m, runes("abc"))
	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("expected the tick loop to continue")
	}

	snap := m.Snapshot()
	if snap.State.Lines != 101 {
		t.Errorf("Lines = %v, want 101", snap.State.Lines)
	}
	if len(m.code) != 2 || m.code[0] != "ab" || m.code[1] != "" {
		t.Errorf("code = %q, want [\"ab\" \"\"]", m.code)
	}

	// Input is consumed by the tick.
	m, _ = tick(t, m)
	if got := m.Snapshot().State.Lines; got != 101 {
		t.Errorf("Lines after idle tick = %v, want 101", got)
	}
}

func TestEditorBuySelected(t *testing.T) {
	m := newTestEditor(t, testOptions(t))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)

	s := m.Snapshot().State
	if s.UpgradesInstalled != 1 {
		t.Fatalf("UpgradesInstalled = %d, want 1", s.UpgradesInstalled)
	}
	if s.Lines != 90 {
		t.Errorf("Lines = %v, want 90", s.Lines)
	}
	if s.Entities != 3 {
		t.Errorf("Entities = %v, want 3", s.Entities)
	}
	if len(m.entities) != 3 {
		t.Errorf("entity visuals = %d, want 3", len(m.entities))
	}
	if !strings.Contains(m.flash, "Installed Coffee") {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestEditorRejectedPurchaseFlashes(t *testing.T) {
	opts := testOptions(t)
	opts.Game.Session.InitialLines = 0
	m := newTestEditor(t, opts)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)

	if got := m.Snapshot().State.UpgradesInstalled; got != 0 {
		t.Errorf("UpgradesInstalled = %d, want 0", got)
	}
	if !strings.Contains(m.flash, "Coffee costs 10") {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestEditorCursorWraps(t *testing.T) {
	m := newTestEditor(t, testOptions(t))

	steps := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, 1},
		{tea.KeyMsg{Type: tea.KeyTab}, 0},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, 1},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
	}
	for i, s := range steps {
		m, _ = send(t, m, s.msg)
		if m.Cursor() != s.want {
			t.Errorf("step %d: cursor = %d, want %d", i, m.Cursor(), s.want)
		}
	}
}

func TestEditorPause(t *testing.T) {
	m := newTestEditor(t, testOptions(t))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !m.Paused() {
		t.Fatal("expected paused")
	}

	m, _ = send(t, m, runes("abc"))
	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("a paused editor keeps ticking")
	}
	snap := m.Snapshot()
	if snap.Tick != 0 || snap.State.Lines != 100 {
		t.Errorf("paused editor advanced: tick %d, lines %v", snap.Tick, snap.State.Lines)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show the pause badge")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m, _ = tick(t, m)
	if m.Snapshot().Tick != 1 {
		t.Error("unpaused editor should tick")
	}
}

func TestEditorSubmitSavesResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions(t)
	opts.Store = store
	m := newTestEditor(t, opts)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := tick(t, m)

	if m.Phase() != PhaseResults {
		t.Fatalf("Phase() = %v, want results", m.Phase())
	}
	if cmd != nil {
		t.Error("the results screen should stop the tick loop")
	}
	if m.ResultID() == "" {
		t.Fatal("expected a saved result")
	}

	res, err := store.ResultByID(m.ResultID())
	if err != nil || res == nil {
		t.Fatalf("ResultByID() = %v, %v", res, err)
	}
	if res.Player != "tester" || res.Mode != "play" || res.Seed != 7 {
		t.Errorf("stored %+v", res)
	}
	if res.Lines != 50 {
		t.Errorf("stored lines = %v, want 50", res.Lines)
	}
	if !strings.Contains(m.View(), "Overall") {
		t.Error("results view should show the overall score")
	}

	// A late tick neither saves again nor restarts the loop.
	m, cmd = tick(t, m)
	if cmd != nil {
		t.Error("stale tick restarted the loop")
	}
	if results, _ := store.TopResults("", 10); len(results) != 1 {
		t.Errorf("stored %d results, want 1", len(results))
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Phase() != PhaseEditing {
		t.Fatal("ctrl+r should start a new jam")
	}
	if cmd == nil {
		t.Error("restart should resume ticking")
	}
	if got := m.Snapshot().State.Lines; got != 100 {
		t.Errorf("new jam lines = %v, want 100", got)
	}
}

func TestEditorBackAndQuit(t *testing.T) {
	m := newTestEditor(t, testOptions(t))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
		t.Error("esc should ask for the menu")
	}

	opts := testOptions(t)
	opts.QuitOnBack = true
	m = newTestEditor(t, opts)
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || cmd == nil {
		t.Error("esc should quit a standalone editor")
	}

	m = newTestEditor(t, testOptions(t))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("a quitting editor renders nothing")
	}
}

func TestEditorView(t *testing.T) {
	for _, width := range []int{100, 50} {
		opts := testOptions(t)
		opts.Runtime.ScreenW = width
		m := newTestEditor(t, opts)

		view := m.View()
		for _, want := range []string{"Upgrades", "Coffee", "Submit", "lines 100"} {
			if !strings.Contains(view, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
	}
}

func TestAppendCodeKeepsTail(t *testing.T) {
	m := newTestEditor(t, testOptions(t))
	m.appendCode(strings.Repeat("x\n", maxCodeLines+10))
	if len(m.code) != maxCodeLines {
		t.Errorf("kept %d lines, want %d", len(m.code), maxCodeLines)
	}
	if m.code[len(m.code)-1] != "" {
		t.Error("last line should be the open one")
	}
}

func TestPurchaseMessage(t *testing.T) {
	m := newTestEditor(t, testOptions(t))
	e := m.engine

	tests := []struct {
		res  economy.PurchaseResult
		want string
	}{
		{economy.PurchaseResult{Kind: economy.KindCoffee, Cost: 10}, "Installed Coffee for 10 lines"},
		{economy.PurchaseResult{Kind: economy.KindCoffee, Cost: 10, Err: economy.ErrInsufficientFunds}, "Coffee costs 10 lines"},
		{economy.PurchaseResult{Kind: economy.KindSubmit, Err: economy.ErrSoldOut}, "Submit is sold out"},
		{economy.PurchaseResult{Kind: economy.KindSubmit, Err: economy.ErrLocked}, "Submit is locked"},
	}

	for _, tt := range tests {
		if got := purchaseMessage(e, tt.res); got != tt.want {
			t.Errorf("purchaseMessage() = %q, want %q", got, tt.want)
		}
	}
}

package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/storage"
)

const (
	maxCodeLines      = 200 // Typed lines kept for the code pane
	maxEntityVisuals  = 512 // Entity glyphs kept for the field
	flashTicks        = 60  // How long a purchase message stays up
	defaultPlayerName = "anonymous"
)

// Phase is the screen an editor session is on.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseResults
)

// Options configures an editor session.
type Options struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // May be nil; results are then not saved
	Player  string
	Mode    string // Stored with the result, e.g. "play" or "ssh"
	Filler  string
	Logger  *log.Logger

	// QuitOnBack makes Esc end the program instead of returning to a menu.
	QuitOnBack bool
}

// EditorModel is the Bubble Tea model for one jam: the player types code,
// buys upgrades and finally submits.
type EditorModel struct {
	opts      Options
	seed      int64
	engine    *economy.Engine
	keyMapper *KeyMapper
	help      help.Model
	frame     core.InputFrame

	cursor   int
	paused   bool
	phase    Phase
	code     []string
	entities []economy.SpawnedEntity
	flash    string
	flashFor int

	results  table.Model
	resultID string
	saveErr  error
	saved    bool

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewEditorModel creates an editor over a fresh engine.
func NewEditorModel(opts Options) (EditorModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = defaultPlayerName
	}
	if opts.Mode == "" {
		opts.Mode = "play"
	}

	m := EditorModel{
		opts:      opts,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		frame:     core.NewInputFrame(),
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}
	if err := m.reset(); err != nil {
		return EditorModel{}, err
	}
	return m, nil
}

// reset starts a new jam with a new engine.
func (m *EditorModel) reset() error {
	seed := m.opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engineOpts := []economy.Option{economy.WithLogger(m.opts.Logger)}
	if m.opts.Filler != "" {
		engineOpts = append(engineOpts, economy.WithFiller(m.opts.Filler))
	}
	engine, err := economy.NewEngine(m.opts.Game, seed, engineOpts...)
	if err != nil {
		return fmt.Errorf("cannot start session: %w", err)
	}

	m.seed = seed
	m.engine = engine
	m.cursor = 0
	m.paused = false
	m.phase = PhaseEditing
	m.code = []string{""}
	m.entities = nil
	m.flash = ""
	m.flashFor = 0
	m.resultID = ""
	m.saveErr = nil
	m.saved = false
	m.frame.Clear()
	return nil
}

// Init starts the tick loop.
func (m EditorModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Navigation acts at once; typing and
// purchases are collected into the frame and applied on the next tick.
func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, typed := m.keyMapper.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.opts.QuitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if m.phase == PhaseResults {
		switch action {
		case core.ActionRestart, core.ActionBuy:
			if err := m.reset(); err != nil {
				m.opts.Logger.Error("restart failed", "error", err)
				return m, nil
			}
			return m, tickCmd(m.opts.Runtime.TickRate)
		case core.ActionNext, core.ActionPrev:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch action {
	case core.ActionNext:
		if n := len(m.engine.OfferKinds()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case core.ActionPrev:
		if n := len(m.engine.OfferKinds()); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionBuy:
		m.frame.Set(core.ActionBuy)
	}
	if !m.paused {
		m.frame.Type(typed)
	}

	return m, nil
}

// handleTick feeds the collected input to the engine and advances it.
func (m EditorModel) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != PhaseEditing {
		// The results screen does not tick; restart resumes the loop.
		return m, nil
	}
	if m.paused {
		m.frame.Clear()
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	if m.frame.Typed > 0 {
		m.engine.Push(economy.CodeTyped{Chars: m.frame.Typed})
	}
	if m.frame.Has(core.ActionBuy) {
		if kinds := m.engine.OfferKinds(); m.cursor < len(kinds) {
			m.engine.Push(economy.PurchaseUpgrade{Kind: kinds[m.cursor]})
		}
	}
	m.frame.Clear()

	report := m.engine.Tick(m.opts.Runtime.TickSeconds())
	m.absorb(report)

	if m.engine.Submitted() {
		m.finish()
		return m, nil
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// absorb copies what the presentation needs out of a tick report.
func (m *EditorModel) absorb(r economy.TickReport) {
	if r.Typed != "" {
		m.appendCode(r.Typed)
	}

	if len(r.SpawnedEntities) > 0 {
		m.entities = append(m.entities, r.SpawnedEntities...)
		if over := len(m.entities) - maxEntityVisuals; over > 0 {
			m.entities = append([]economy.SpawnedEntity(nil), m.entities[over:]...)
		}
	}

	for _, p := range r.Purchases {
		m.setFlash(purchaseMessage(m.engine, p))
	}
	if m.flashFor > 0 {
		m.flashFor--
		if m.flashFor == 0 {
			m.flash = ""
		}
	}

	if n := len(m.engine.OfferKinds()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func purchaseMessage(e *economy.Engine, p economy.PurchaseResult) string {
	name := p.Kind.String()
	if e.Catalog().Has(p.Kind) {
		name = e.Catalog().Get(p.Kind).Name
	}

	switch {
	case p.Err == nil:
		return fmt.Sprintf("Installed %s for %s lines", name, formatAmount(p.Cost))
	case errors.Is(p.Err, economy.ErrInsufficientFunds):
		return fmt.Sprintf("%s costs %s lines", name, formatAmount(p.Cost))
	case errors.Is(p.Err, economy.ErrSoldOut):
		return name + " is sold out"
	case errors.Is(p.Err, economy.ErrLocked):
		return name + " is locked"
	default:
		return p.Err.Error()
	}
}

func (m *EditorModel) setFlash(text string) {
	m.flash = text
	m.flashFor = flashTicks
}

// appendCode adds typed filler to the code pane, keeping the tail.
func (m *EditorModel) appendCode(text string) {
	parts := strings.Split(text, "\n")
	last := len(m.code) - 1
	m.code[last] += parts[0]
	m.code = append(m.code, parts[1:]...)
	if over := len(m.code) - maxCodeLines; over > 0 {
		m.code = append([]string(nil), m.code[over:]...)
	}
}

// finish switches to the results screen and saves the result once.
func (m *EditorModel) finish() {
	m.phase = PhaseResults
	m.paused = false

	snap := m.engine.Snapshot()
	m.results = newScoresTable(snap.Scores, m.height)

	if m.saved {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	res := storage.NewResult(m.opts.Player, m.opts.Mode, m.seed, snap.State, snap.Scores, snap.Elapsed)
	id, err := m.opts.Store.SaveResult(res)
	if err != nil {
		m.saveErr = err
		m.opts.Logger.Warn("could not save result", "error", err)
		return
	}
	m.resultID = id
	m.opts.Logger.Info("result saved", "id", id, "player", m.opts.Player, "overall", snap.Scores.Overall())
}

// View renders the current state to a string for display.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == PhaseResults {
		return m.viewResults()
	}
	return m.viewEditor()
}

func (m EditorModel) viewEditor() string {
	snap := m.engine.Snapshot()
	width := max(m.width, 40)
	height := max(m.height, 16)

	var b strings.Builder
	b.WriteString(renderStatus(snap, m.paused, width))
	b.WriteString("\n")

	// Status, entity field, flash and help take the rest of the rows.
	codeHeight := max(height-fieldHeight-10, 3)

	var body string
	if width >= minWidthForPanel {
		code := renderCode(m.code, width-panelWidth-8, codeHeight)
		offers := renderOffers(snap.Offers, m.cursor, panelWidth)
		body = lipgloss.JoinHorizontal(lipgloss.Top, code, " ", offers)
	} else {
		code := renderCode(m.code, width-6, max(codeHeight-len(snap.Offers)-3, 3))
		offers := renderOffers(snap.Offers, m.cursor, width-2)
		body = lipgloss.JoinVertical(lipgloss.Left, code, offers)
	}
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(renderEntities(m.entities, width-4, fieldHeight))
	b.WriteString("\n")

	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))

	return b.String()
}

// Snapshot returns the engine snapshot of the current jam.
func (m EditorModel) Snapshot() economy.Snapshot {
	return m.engine.Snapshot()
}

// Phase returns the current screen.
func (m EditorModel) Phase() Phase {
	return m.phase
}

// Cursor returns the index of the selected offer.
func (m EditorModel) Cursor() int {
	return m.cursor
}

// Paused reports whether the simulation is paused.
func (m EditorModel) Paused() bool {
	return m.paused
}

// ResultID returns the stored result ID, empty until one is saved.
func (m EditorModel) ResultID() string {
	return m.resultID
}

// BackToMenu returns true if the user asked to leave the editor.
func (m EditorModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit.
func (m EditorModel) IsQuitting() bool {
	return m.quitting
}

// Run starts a single jam in its own Bubble Tea program.
func Run(opts Options) error {
	opts.QuitOnBack = true
	model, err := NewEditorModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(EditorModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

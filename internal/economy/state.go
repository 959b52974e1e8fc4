package economy

import (
	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
)

// State holds the session counters. Effects and world events mutate it
// through the engine; the mutators below do plain arithmetic only.
type State struct {
	Lines             float64 // Currency
	Entities          float64
	TechDebt          float64
	UpgradesInstalled uint64
	FunScore          float64
	PresentationScore float64

	EntitySizeMin float32
	EntitySizeMax float32
	EntityColors  []core.Color

	Submitted bool
}

// NewState seeds the counters from the session and entity config.
// Unknown color names are skipped.
func NewState(cfg config.GameConfig) State {
	s := State{
		Lines:         cfg.Session.InitialLines,
		TechDebt:      cfg.Session.InitialTechDebt,
		EntitySizeMin: cfg.Entities.SizeMin,
		EntitySizeMax: cfg.Entities.SizeMax,
	}
	for _, name := range cfg.Entities.Colors {
		if c, ok := core.ParseColor(name); ok {
			s.EntityColors = append(s.EntityColors, c)
		}
	}
	if len(s.EntityColors) == 0 {
		s.EntityColors = []core.Color{core.ColorWhite}
	}
	return s
}

// AddLines adds n lines (n may be negative).
func (s *State) AddLines(n float64) {
	s.Lines += n
}

// SpendLines debits cost. The caller checks affordability.
func (s *State) SpendLines(cost float64) {
	s.Lines -= cost
}

// SpawnEntity counts exactly one new entity.
func (s *State) SpawnEntity() {
	s.Entities++
}

// AddTechDebt adjusts tech debt. There is no floor.
func (s *State) AddTechDebt(n float64) {
	s.TechDebt += n
}

// ScaleEntitySize multiplies both ends of the entity size range.
func (s *State) ScaleEntitySize(factor float64) {
	s.EntitySizeMin *= float32(factor)
	s.EntitySizeMax *= float32(factor)
}

// AddEntityColor appends c unless it is already in use.
func (s *State) AddEntityColor(c core.Color) bool {
	for _, existing := range s.EntityColors {
		if existing == c {
			return false
		}
	}
	s.EntityColors = append(s.EntityColors, c)
	return true
}

// Submit marks the session as finished.
func (s *State) Submit() {
	s.Submitted = true
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.EntityColors = append([]core.Color(nil), s.EntityColors...)
	return s
}

package economy

import "github.com/vovakirdan/codejam/internal/core"

// Event is an inbound economy event. The set is closed.
type Event interface {
	economyEvent()
}

// PurchaseUpgrade asks the engine to buy one copy of Kind.
type PurchaseUpgrade struct {
	Kind Kind
}

// EntitySpawnRequested asks for Count entities near Position.
// Positions are normalized to the unit square.
type EntitySpawnRequested struct {
	Position core.Vec
	Count    int
}

// CodeTyped reports Chars keystrokes from the player.
type CodeTyped struct {
	Chars int
}

// codeGenerated types Runes filler runes directly, bypassing the
// per-keystroke multiplier. Timers and type_code effects emit it.
type codeGenerated struct {
	Runes int
}

func (PurchaseUpgrade) economyEvent()      {}
func (EntitySpawnRequested) economyEvent() {}
func (CodeTyped) economyEvent()            {}
func (codeGenerated) economyEvent()        {}

// SpawnedEntity describes one new entity for the presentation layer.
type SpawnedEntity struct {
	Position core.Vec
	Size     float32
	Color    core.Color
}

// PurchaseResult is the outcome of one queued purchase.
type PurchaseResult struct {
	Kind Kind
	Cost float64
	Err  error // nil on success
}

// TickReport lists everything that happened during one Tick.
type TickReport struct {
	Tick      uint64
	Purchases []PurchaseResult

	Installed []Kind // Install hooks that ran, in order
	Updated   []Kind // Kinds whose update hooks ran
	Ran       []Kind // Run hooks, one entry per copy

	Spawned         int             // Exact number of entities spawned
	SpawnedEntities []SpawnedEntity // Capped at MaxSpawnVisuals

	Typed      string  // Filler text produced this tick
	LinesTyped float64 // Newlines in Typed

	PassiveCodeFired  bool
	PassiveSpawnFired bool

	OffersChanged bool
	Submitted     bool // The session ended during this tick
}

// Offer is an upgrade currently presented to the player.
type Offer struct {
	Kind        Kind
	Name        string
	Description string
	Cost        float64
	Affordable  bool
	Remaining   int
}

// Snapshot is a read-only view of the engine for rendering and persistence.
type Snapshot struct {
	Tick         uint64
	Elapsed      float64
	State        State
	Offers       []Offer
	Scores       Scores
	Outline      map[Kind]int
	CharsPerKey  float64
	SpawnPerLine float64
	OfferSlots   int
	PassiveCode  Timer
	PassiveSpawn Timer
	TutorialLeft int
	RNGState     uint64
}

package economy

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
)

// spawnJitter spreads a batch of entities around its requested position.
const spawnJitter = 0.05

// Engine runs one session of the economy. It is not safe for concurrent use;
// each player owns an engine and drives it from one goroutine.
type Engine struct {
	catalog   *Catalog
	state     State
	outline   Outline
	sequencer *Sequencer
	rng       *RNG
	filler    *Filler
	bounds    ScoreBounds
	palette   []core.Color
	logger    *log.Logger

	purchases       []Kind
	world           []Event
	pendingInstalls []Kind
	runHooks        []Kind // One entry per installed copy with a run hook

	codeTimer  Timer
	spawnTimer Timer

	charsPerKey  float64
	spawnPerLine float64
	spawnCarry   float64
	slots        int
	maxVisuals   int

	offers      []Kind
	offersDirty bool

	tick    uint64
	elapsed float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for purchase diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFiller replaces the text produced by typing.
func WithFiller(text string) Option {
	return func(e *Engine) {
		e.filler = NewFiller(text)
	}
}

// WithCatalog uses a prebuilt catalog instead of the config's upgrade list.
// The catalog is cloned.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c.Clone()
		}
	}
}

// NewEngine creates a session from cfg. The same config and seed always
// produce the same session for the same inputs.
func NewEngine(cfg config.GameConfig, seed int64, opts ...Option) (*Engine, error) {
	e := &Engine{
		state:       NewState(cfg),
		rng:         NewRNG(seed),
		bounds:      BoundsFromConfig(cfg.Scoring),
		logger:      log.New(io.Discard),
		charsPerKey: cfg.Session.CharsPerKey,
		slots:       cfg.Session.OfferSlots,
		maxVisuals:  cfg.Session.MaxSpawnVisuals,
		codeTimer:   Timer{Interval: cfg.Timers.PassiveCode.Interval, Amount: cfg.Timers.PassiveCode.Amount},
		spawnTimer:  Timer{Interval: cfg.Timers.PassiveSpawn.Interval, Amount: cfg.Timers.PassiveSpawn.Amount},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		catalog, err := CatalogFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		e.catalog = catalog
	}
	if e.filler == nil {
		e.filler = NewFiller(config.DefaultFiller())
	}
	if e.charsPerKey <= 0 {
		e.charsPerKey = 1
	}
	if e.slots <= 0 {
		e.slots = 1
	}

	for _, name := range cfg.Entities.Palette {
		if c, ok := core.ParseColor(name); ok {
			e.palette = append(e.palette, c)
		}
	}

	seq, err := e.catalog.Sequence(cfg.Sequence)
	if err != nil {
		return nil, err
	}
	e.sequencer = NewSequencer(e.catalog, seq, e.rng)
	e.refreshOffers()

	return e, nil
}

// Push queues an event for the next Tick. Purchases and world events
// are kept in separate FIFO queues.
func (e *Engine) Push(ev Event) {
	switch ev := ev.(type) {
	case nil:
		return
	case PurchaseUpgrade:
		e.purchases = append(e.purchases, ev.Kind)
	default:
		e.world = append(e.world, ev)
	}
}

// Cost returns the current price of kind.
func (e *Engine) Cost(kind Kind) float64 {
	return e.catalog.Get(kind).Cost(e.state.TechDebt)
}

// IsUnlocked reports whether every gate of kind holds right now.
func (e *Engine) IsUnlocked(kind Kind) bool {
	return e.catalog.Get(kind).Unlocked(&e.state, &e.outline)
}

// IsOfferable reports whether kind is unlocked and not sold out.
func (e *Engine) IsOfferable(kind Kind) bool {
	u := e.catalog.Get(kind)
	return !u.SoldOut() && u.Unlocked(&e.state, &e.outline)
}

// TryPurchase buys one copy of kind immediately. Its install hooks run on
// the next Tick. A rejected purchase returns a *PurchaseError wrapping
// ErrSoldOut, ErrLocked or ErrInsufficientFunds and changes nothing.
func (e *Engine) TryPurchase(kind Kind) error {
	u := e.catalog.Get(kind)
	cost := u.Cost(e.state.TechDebt)

	var reason error
	switch {
	case u.SoldOut():
		reason = ErrSoldOut
	case !u.Unlocked(&e.state, &e.outline):
		reason = ErrLocked
	case e.state.Lines < cost:
		reason = ErrInsufficientFunds
	}
	if reason != nil {
		e.logger.Debug("purchase rejected", "kind", kind, "reason", reason, "cost", cost, "lines", e.state.Lines)
		return &PurchaseError{Kind: kind, Cost: cost, Lines: e.state.Lines, Err: reason}
	}

	e.state.SpendLines(cost)
	if !u.Repeatable() { // Unlimited stays Unlimited
		u.Remaining--
	}
	e.state.UpgradesInstalled++
	e.state.AddTechDebt(u.TechDebt)
	e.state.FunScore += u.FunScore
	e.state.PresentationScore += u.PresentationScore
	e.outline.Add(kind)

	e.pendingInstalls = append(e.pendingInstalls, kind)
	if len(u.Run) > 0 {
		e.runHooks = append(e.runHooks, kind)
	}
	e.offersDirty = true

	e.logger.Debug("upgrade purchased",
		"kind", kind,
		"cost", cost,
		"lines", e.state.Lines,
		"tech_debt", e.state.TechDebt,
		"installed", e.state.UpgradesInstalled,
	)
	return nil
}

// Tick advances the session by dt seconds:
//  1. queued purchases
//  2. install hooks of new purchases
//  3. update hooks of every kind ever installed, in catalog order
//  4. run hooks, once per installed copy, in purchase order
//  5. passive timers
//  6. queued spawn and typing events, including ones raised during this step
//  7. a new offer set if anything was bought
func (e *Engine) Tick(dt float64) TickReport {
	if !(dt > 0) || math.IsInf(dt, 1) {
		dt = 0
	}
	e.tick++
	e.elapsed += dt

	r := TickReport{Tick: e.tick}
	wasSubmitted := e.state.Submitted

	purchases := e.purchases
	e.purchases = nil
	for _, kind := range purchases {
		cost := e.Cost(kind)
		err := e.TryPurchase(kind)
		r.Purchases = append(r.Purchases, PurchaseResult{Kind: kind, Cost: cost, Err: err})
	}

	pending := e.pendingInstalls
	e.pendingInstalls = nil
	for _, kind := range pending {
		for _, eff := range e.catalog.Get(kind).Install {
			e.apply(eff, 1)
		}
		r.Installed = append(r.Installed, kind)
	}

	for _, kind := range e.catalog.order {
		u := e.catalog.byKind[kind]
		if len(u.Update) == 0 || !e.outline.Installed(kind) {
			continue
		}
		for _, eff := range u.Update {
			e.apply(eff, dt)
		}
		r.Updated = append(r.Updated, kind)
	}

	for _, kind := range e.runHooks {
		for _, eff := range e.catalog.Get(kind).Run {
			e.apply(eff, dt)
		}
		r.Ran = append(r.Ran, kind)
	}

	if e.codeTimer.Advance(dt) {
		r.PassiveCodeFired = true
		if n := int(e.codeTimer.Amount); n > 0 {
			e.world = append(e.world, codeGenerated{Runes: n})
		}
	}
	if e.spawnTimer.Advance(dt) {
		r.PassiveSpawnFired = true
		if n := int(e.spawnTimer.Amount); n > 0 {
			e.world = append(e.world, EntitySpawnRequested{Position: e.randomPosition(), Count: n})
		}
	}

	for i := 0; i < len(e.world); i++ {
		e.handleWorld(e.world[i], &r)
	}
	e.world = e.world[:0]

	if e.offersDirty || len(e.offers) == 0 {
		r.OffersChanged = e.refreshOffers()
	}

	r.Submitted = !wasSubmitted && e.state.Submitted
	if r.Submitted {
		e.logger.Info("session submitted", "tick", e.tick, "lines", e.state.Lines, "entities", e.state.Entities)
	}
	return r
}

// apply executes one effect. Rate effects are multiplied by scale, which is
// dt for recurring hooks and 1 for install hooks.
func (e *Engine) apply(eff Effect, scale float64) {
	switch eff.Kind {
	case EffectAddLines:
		e.state.AddLines(eff.Amount * scale)
	case EffectAddTechDebt:
		e.state.AddTechDebt(eff.Amount * scale)
	case EffectSpawnEntities:
		if n := int(eff.Amount); n > 0 {
			e.world = append(e.world, EntitySpawnRequested{Position: e.randomPosition(), Count: n})
		}
	case EffectTypeCode:
		if n := int(eff.Amount); n > 0 {
			e.world = append(e.world, codeGenerated{Runes: n})
		}
	case EffectTypingBonus:
		e.charsPerKey += eff.Amount
	case EffectSpawnPerLine:
		e.spawnPerLine += eff.Amount
	case EffectPassiveCode:
		enableTimer(&e.codeTimer, eff)
	case EffectPassiveCodeSpeedup:
		if eff.Amount > 0 {
			e.codeTimer.Interval *= eff.Amount
		}
	case EffectPassiveSpawn:
		enableTimer(&e.spawnTimer, eff)
	case EffectPassiveSpawnSpeedup:
		if eff.Amount > 0 {
			e.spawnTimer.Interval *= eff.Amount
		}
	case EffectEntitySize:
		if eff.Amount > 0 {
			e.state.ScaleEntitySize(eff.Amount)
		}
	case EffectEntityColor:
		c := eff.Color
		if c == core.ColorDefault {
			c = e.nextPaletteColor()
		}
		if c != core.ColorDefault {
			e.state.AddEntityColor(c)
		}
	case EffectOfferSlot:
		e.slots = max(1, e.slots+int(eff.Amount))
		e.offersDirty = true
	case EffectSubmit:
		e.state.Submit()
	default:
		panic(fmt.Sprintf("economy: unhandled effect %d", eff.Kind))
	}
}

// enableTimer starts a disabled timer or stacks the payload of a running one.
func enableTimer(t *Timer, eff Effect) {
	if !t.Enabled() {
		t.Interval = eff.Interval
		t.Amount = eff.Amount
		return
	}
	t.Amount += eff.Amount
}

// nextPaletteColor returns the first palette color not in use yet.
func (e *Engine) nextPaletteColor() core.Color {
	for _, c := range e.palette {
		if !slices.Contains(e.state.EntityColors, c) {
			return c
		}
	}
	return core.ColorDefault
}

func (e *Engine) handleWorld(ev Event, r *TickReport) {
	switch ev := ev.(type) {
	case EntitySpawnRequested:
		e.spawn(ev, r)
	case CodeTyped:
		if ev.Chars > 0 {
			e.typeCode(int(math.Floor(float64(ev.Chars)*e.charsPerKey)), r)
		}
	case codeGenerated:
		e.typeCode(ev.Runes, r)
	}
}

// spawn expands a batch request into unit spawns so the entity count
// stays an exact integer.
func (e *Engine) spawn(ev EntitySpawnRequested, r *TickReport) {
	for range ev.Count {
		e.state.SpawnEntity()
		r.Spawned++
		if len(r.SpawnedEntities) < e.maxVisuals {
			r.SpawnedEntities = append(r.SpawnedEntities, e.describeEntity(ev.Position))
		}
	}
}

func (e *Engine) describeEntity(at core.Vec) SpawnedEntity {
	pos := core.V(
		core.ClampF(at.X+e.rng.Between(-spawnJitter, spawnJitter), 0, 1),
		core.ClampF(at.Y+e.rng.Between(-spawnJitter, spawnJitter), 0, 1),
	)
	size := float32(e.rng.Between(float64(e.state.EntitySizeMin), float64(e.state.EntitySizeMax)))
	color := core.ColorWhite
	if n := len(e.state.EntityColors); n > 0 {
		color = e.state.EntityColors[e.rng.Intn(n)]
	}
	return SpawnedEntity{Position: pos, Size: size, Color: color}
}

func (e *Engine) randomPosition() core.Vec {
	return core.V(e.rng.Float64(), e.rng.Float64())
}

// typeCode takes n runes of filler. Lines grow by the newlines produced.
func (e *Engine) typeCode(n int, r *TickReport) {
	text, newlines := e.filler.Take(n)
	r.Typed += text
	if newlines == 0 {
		return
	}
	lines := float64(newlines)
	e.state.AddLines(lines)
	r.LinesTyped += lines

	if e.spawnPerLine <= 0 {
		return
	}
	e.spawnCarry += lines * e.spawnPerLine
	if count := int(e.spawnCarry); count > 0 {
		e.spawnCarry -= float64(count)
		e.world = append(e.world, EntitySpawnRequested{Position: e.randomPosition(), Count: count})
	}
}

// refreshOffers replaces the offer set and reports whether it changed.
func (e *Engine) refreshOffers() bool {
	next := e.sequencer.NextOfferSet(e.slots, e.IsOfferable)
	e.offersDirty = false
	if slices.Equal(next, e.offers) {
		return false
	}
	e.offers = next
	return true
}

// OfferKinds returns the kinds currently offered.
func (e *Engine) OfferKinds() []Kind {
	return append([]Kind(nil), e.offers...)
}

// Offers returns the current offers with live prices.
func (e *Engine) Offers() []Offer {
	offers := make([]Offer, 0, len(e.offers))
	for _, kind := range e.offers {
		u := e.catalog.Get(kind)
		cost := u.Cost(e.state.TechDebt)
		offers = append(offers, Offer{
			Kind:        kind,
			Name:        u.Name,
			Description: u.Description,
			Cost:        cost,
			Affordable:  e.state.Lines >= cost && !u.SoldOut(),
			Remaining:   u.Remaining,
		})
	}
	return offers
}

// State returns a copy of the counters.
func (e *Engine) State() State {
	return e.state.Clone()
}

// Outline returns a copy of the install tally.
func (e *Engine) Outline() Outline {
	return e.outline
}

// Catalog returns the session's catalog. Callers must not modify it.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Scores ranks the current state.
func (e *Engine) Scores() Scores {
	return CalculateScores(e.state, e.bounds)
}

// Submitted reports whether the session has ended.
func (e *Engine) Submitted() bool {
	return e.state.Submitted
}

// Elapsed returns the simulated seconds so far.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Snapshot returns a copy of everything a renderer or recorder needs.
func (e *Engine) Snapshot() Snapshot {
	seq := e.sequencer.Sequence()
	return Snapshot{
		Tick:         e.tick,
		Elapsed:      e.elapsed,
		State:        e.state.Clone(),
		Offers:       e.Offers(),
		Scores:       e.Scores(),
		Outline:      e.outline.Counts(),
		CharsPerKey:  e.charsPerKey,
		SpawnPerLine: e.spawnPerLine,
		OfferSlots:   e.slots,
		PassiveCode:  e.codeTimer,
		PassiveSpawn: e.spawnTimer,
		TutorialLeft: seq.Len() - seq.Cursor(),
		RNGState:     e.rng.State(),
	}
}

package economy

import (
	"fmt"

	"github.com/vovakirdan/codejam/internal/core"
)

// EffectKind is the closed set of things an upgrade hook can do.
// The engine dispatches on it in a single switch.
type EffectKind uint8

const (
	EffectAddLines            EffectKind = iota // Lines += Amount (per second in update/run hooks)
	EffectAddTechDebt                           // TechDebt += Amount (per second in update/run hooks)
	EffectSpawnEntities                         // Request Amount entity spawns
	EffectTypeCode                              // Type Amount filler runes
	EffectTypingBonus                           // Runes per keystroke += Amount
	EffectSpawnPerLine                          // Entities spawned per typed line += Amount
	EffectPassiveCode                           // Enable the passive code timer
	EffectPassiveCodeSpeedup                    // Passive code interval *= Amount
	EffectPassiveSpawn                          // Enable the passive spawn timer
	EffectPassiveSpawnSpeedup                   // Passive spawn interval *= Amount
	EffectEntitySize                            // Entity size range *= Amount
	EffectEntityColor                           // Add Color (or the next palette color)
	EffectOfferSlot                             // Offered upgrades += Amount
	EffectSubmit                                // End the session
	EffectCount                                 // Sentinel for counting effect kinds
)

var effectNames = [EffectCount]string{
	EffectAddLines:            "add_lines",
	EffectAddTechDebt:         "add_tech_debt",
	EffectSpawnEntities:       "spawn_entities",
	EffectTypeCode:            "type_code",
	EffectTypingBonus:         "typing_bonus",
	EffectSpawnPerLine:        "spawn_per_line",
	EffectPassiveCode:         "passive_code",
	EffectPassiveCodeSpeedup:  "passive_code_speedup",
	EffectPassiveSpawn:        "passive_spawn",
	EffectPassiveSpawnSpeedup: "passive_spawn_speedup",
	EffectEntitySize:          "entity_size",
	EffectEntityColor:         "entity_color",
	EffectOfferSlot:           "offer_slot",
	EffectSubmit:              "submit",
}

// String returns the config name of the effect.
func (e EffectKind) String() string {
	if e >= EffectCount {
		return "unknown"
	}
	return effectNames[e]
}

// ParseEffectKind converts a config name to an EffectKind.
func ParseEffectKind(s string) (EffectKind, bool) {
	for i, name := range effectNames {
		if name == s {
			return EffectKind(i), true
		}
	}
	return EffectCount, false
}

// rate reports whether the effect is a per-second rate when fired from a
// recurring hook.
func (e EffectKind) rate() bool {
	return e == EffectAddLines || e == EffectAddTechDebt
}

// Effect is one resolved hook action.
type Effect struct {
	Kind     EffectKind
	Amount   float64
	Interval float64    // Seconds, timer effects only
	Color    core.Color // entity_color only; ColorDefault picks from the palette
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectPassiveCode, EffectPassiveSpawn:
		return fmt.Sprintf("%s(%g every %gs)", e.Kind, e.Amount, e.Interval)
	case EffectEntityColor:
		if e.Color == core.ColorDefault {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s(%s)", e.Kind, e.Color)
	case EffectSubmit:
		return e.Kind.String()
	default:
		return fmt.Sprintf("%s(%g)", e.Kind, e.Amount)
	}
}

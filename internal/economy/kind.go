// Package economy implements the codejam progression economy: the upgrade
// catalog and its unlock predicates, cost scaling by tech debt, install and
// recurring effect hooks, the offer sequencer and the score calculator.
//
// The package has no terminal, network or storage dependencies. A session owns
// one Engine and drives it with Push and Tick from a single goroutine.
package economy

// Kind identifies an upgrade. The set is closed; config entries name kinds by
// their String form.
type Kind uint8

const (
	KindDarkMode Kind = iota
	KindTouchOfLife
	KindAutocomplete
	KindPairProgrammer
	KindCoffee
	KindBurstOfLife
	KindEntitySpawner
	KindProceduralGeneration
	KindRefactor
	KindIntern
	KindLinter
	KindSpaghettiCode
	KindColorPalette
	KindEntityMagnifier
	KindEntityShrinker
	KindSoundEffects
	KindScreenShake
	KindTenXDev
	KindBrainstorm
	KindCopyPaste
	KindUnitTests
	KindSubmit
	KindCount // Sentinel for counting kinds
)

var kindNames = [KindCount]string{
	KindDarkMode:             "dark_mode",
	KindTouchOfLife:          "touch_of_life",
	KindAutocomplete:         "autocomplete",
	KindPairProgrammer:       "pair_programmer",
	KindCoffee:               "coffee",
	KindBurstOfLife:          "burst_of_life",
	KindEntitySpawner:        "entity_spawner",
	KindProceduralGeneration: "procedural_generation",
	KindRefactor:             "refactor",
	KindIntern:               "intern",
	KindLinter:               "linter",
	KindSpaghettiCode:        "spaghetti_code",
	KindColorPalette:         "color_palette",
	KindEntityMagnifier:      "entity_magnifier",
	KindEntityShrinker:       "entity_shrinker",
	KindSoundEffects:         "sound_effects",
	KindScreenShake:          "screen_shake",
	KindTenXDev:              "ten_x_dev",
	KindBrainstorm:           "brainstorm",
	KindCopyPaste:            "copy_paste",
	KindUnitTests:            "unit_tests",
	KindSubmit:               "submit",
}

// String returns the config key of the kind.
func (k Kind) String() string {
	if k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// ParseKind converts a config key to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindCount, false
}

// AllKinds returns every declared kind in enum order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, KindCount)
	for k := range KindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

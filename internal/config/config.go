// Package config provides YAML-based game configuration loading and
// difficulty management for codejam.
package config

// GameConfig contains everything a session needs at startup: the upgrade
// catalog, the tutorial sequence, score-curve bounds and simulation defaults.
// The economy treats it as an immutable parameter set.
type GameConfig struct {
	Session  SessionConfig `yaml:"session"`
	Scoring  ScoringConfig `yaml:"scoring"`
	Entities EntityConfig  `yaml:"entities"`
	Timers   TimersConfig  `yaml:"timers"`
	Sequence []string      `yaml:"sequence"` // Tutorial upgrades, offered in order
	Upgrades []UpgradeSpec `yaml:"upgrades"` // Declaration order matters for update hooks
}

// SessionConfig defines starting counters and economy-wide knobs.
type SessionConfig struct {
	InitialLines     float64 `yaml:"initial_lines"`
	InitialTechDebt  float64 `yaml:"initial_tech_debt"`
	OfferSlots       int     `yaml:"offer_slots"`        // Upgrades offered at once
	CharsPerKey      float64 `yaml:"chars_per_key"`      // Filler runes produced per keystroke
	MaxSpawnVisuals  int     `yaml:"max_spawn_visuals"`  // Spawn descriptors reported per tick
	DefaultCostScale float64 `yaml:"default_cost_scale"` // Used when an upgrade omits cost_scale_factor
	FillerPath       string  `yaml:"filler_path,omitempty"`
}

// ScoringConfig defines the logistic curve bounds of each results category.
type ScoringConfig struct {
	Fun          BoundsConfig `yaml:"fun"`
	Presentation BoundsConfig `yaml:"presentation"`
	Theme        BoundsConfig `yaml:"theme"`
	Entities     BoundsConfig `yaml:"entities"`
	Lines        BoundsConfig `yaml:"lines"`
}

// BoundsConfig is a lower/upper pair. A value at Lower scores ~1.48, at Upper ~4.52.
type BoundsConfig struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// EntityConfig defines the cosmetic entity parameters.
type EntityConfig struct {
	SizeMin float32  `yaml:"size_min"`
	SizeMax float32  `yaml:"size_max"`
	Colors  []string `yaml:"colors"`  // Initial entity colors
	Palette []string `yaml:"palette"` // Colors handed out by entity_color effects without a color
}

// TimersConfig defines the passive generators. An interval of 0 keeps a timer disabled
// until an upgrade enables it.
type TimersConfig struct {
	PassiveCode  TimerConfig `yaml:"passive_code"`
	PassiveSpawn TimerConfig `yaml:"passive_spawn"`
}

// TimerConfig defines an accumulate-and-fire timer.
type TimerConfig struct {
	Interval float64 `yaml:"interval"` // Seconds between fires
	Amount   float64 `yaml:"amount"`   // Characters typed or entities spawned per fire
}

// UpgradeSpec is one catalog entry as written in YAML.
type UpgradeSpec struct {
	Kind              string          `yaml:"kind"`
	Name              string          `yaml:"name"`
	Description       string          `yaml:"description"`
	BaseCost          float64         `yaml:"base_cost"`
	CostScaleFactor   float64         `yaml:"cost_scale_factor,omitempty"`
	TechDebt          float64         `yaml:"tech_debt"`
	Weight            float64         `yaml:"weight"`
	Remaining         *int            `yaml:"remaining,omitempty"` // nil = unlimited
	FunScore          float64         `yaml:"fun_score,omitempty"`
	PresentationScore float64         `yaml:"presentation_score,omitempty"`
	Requires          RequirementSpec `yaml:"requires,omitempty"`
	Install           []EffectSpec    `yaml:"install,omitempty"`
	Update            []EffectSpec    `yaml:"update,omitempty"`
	Run               []EffectSpec    `yaml:"run,omitempty"`
}

// RequirementSpec gates an upgrade. All ranges are inclusive and unbounded when omitted.
type RequirementSpec struct {
	Entities  RangeSpec       `yaml:"entities,omitempty"`
	Lines     RangeSpec       `yaml:"lines,omitempty"`
	Upgrades  RangeSpec       `yaml:"upgrades,omitempty"`
	TechDebt  RangeSpec       `yaml:"tech_debt,omitempty"`
	Installed []InstalledSpec `yaml:"installed,omitempty"`
}

// RangeSpec is an optional inclusive range.
type RangeSpec struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// InstalledSpec requires another upgrade to have been installed Count times.
type InstalledSpec struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// EffectSpec names an effect and its parameters.
type EffectSpec struct {
	Effect   string  `yaml:"effect"`
	Amount   float64 `yaml:"amount,omitempty"`
	Interval float64 `yaml:"interval,omitempty"`
	Color    string  `yaml:"color,omitempty"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/codejam.yaml
var defaultGameYAML []byte

//go:embed defaults/filler.txt
var defaultFiller string

// DefaultSessionConfig returns the default session parameters.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		InitialLines:     0,
		InitialTechDebt:  0,
		OfferSlots:       3,
		CharsPerKey:      4,
		MaxSpawnVisuals:  64,
		DefaultCostScale: 1.2,
	}
}

// DefaultScoringConfig returns the default score-curve bounds.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Fun:          BoundsConfig{Lower: -5, Upper: 25},
		Presentation: BoundsConfig{Lower: -5, Upper: 25},
		Theme:        BoundsConfig{Lower: 0, Upper: 1e9},
		Entities:     BoundsConfig{Lower: 0, Upper: 1e9},
		Lines:        BoundsConfig{Lower: 0, Upper: 5000},
	}
}

// DefaultEntityConfig returns the default cosmetic entity parameters.
func DefaultEntityConfig() EntityConfig {
	return EntityConfig{
		SizeMin: 0.6,
		SizeMax: 1.4,
		Colors:  []string{"white"},
		Palette: []string{"red", "green", "yellow", "blue", "magenta", "cyan", "orange", "pink"},
	}
}

// DefaultGameConfig returns the embedded default configuration.
// Falls back to a catalog-less config if the embedded YAML cannot be parsed.
func DefaultGameConfig() GameConfig {
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return GameConfig{
			Session:  DefaultSessionConfig(),
			Scoring:  DefaultScoringConfig(),
			Entities: DefaultEntityConfig(),
		}
	}
	return cfg
}

// DefaultFiller returns the embedded code text typed by the player.
func DefaultFiller() string {
	return defaultFiller
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultGameYAML
}

// Parse decodes a YAML document and fills unset fields with defaults.
func Parse(data []byte) (GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-valued knobs that would otherwise stall the economy.
func applyDefaults(cfg *GameConfig) {
	def := DefaultSessionConfig()
	if cfg.Session.OfferSlots <= 0 {
		cfg.Session.OfferSlots = def.OfferSlots
	}
	if cfg.Session.CharsPerKey <= 0 {
		cfg.Session.CharsPerKey = def.CharsPerKey
	}
	if cfg.Session.MaxSpawnVisuals <= 0 {
		cfg.Session.MaxSpawnVisuals = def.MaxSpawnVisuals
	}
	if cfg.Session.DefaultCostScale <= 0 {
		cfg.Session.DefaultCostScale = def.DefaultCostScale
	}

	scoring := DefaultScoringConfig()
	fillBounds(&cfg.Scoring.Fun, scoring.Fun)
	fillBounds(&cfg.Scoring.Presentation, scoring.Presentation)
	fillBounds(&cfg.Scoring.Theme, scoring.Theme)
	fillBounds(&cfg.Scoring.Entities, scoring.Entities)
	fillBounds(&cfg.Scoring.Lines, scoring.Lines)

	entities := DefaultEntityConfig()
	if cfg.Entities.SizeMin <= 0 && cfg.Entities.SizeMax <= 0 {
		cfg.Entities.SizeMin = entities.SizeMin
		cfg.Entities.SizeMax = entities.SizeMax
	}
	if len(cfg.Entities.Colors) == 0 {
		cfg.Entities.Colors = entities.Colors
	}
	if len(cfg.Entities.Palette) == 0 {
		cfg.Entities.Palette = entities.Palette
	}
}

// fillBounds replaces a degenerate (lower >= upper) pair with the default.
func fillBounds(b *BoundsConfig, def BoundsConfig) {
	if b.Lower >= b.Upper {
		*b = def
	}
}

package config

// ParsePreset converts a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy":
		return DifficultyEasy
	case "normal":
		return DifficultyNormal
	case "hard":
		return DifficultyHard
	case "fixed":
		return DifficultyFixed
	default:
		return ""
	}
}

// CostGrowthForPreset returns how strongly tech debt inflates costs under a preset.
// 1.0 keeps catalog values; 0 disables inflation entirely.
func CostGrowthForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	case DifficultyFixed:
		return 0
	default:
		return 1.0
	}
}

// StartingLinesForPreset returns the extra lines granted at session start.
func StartingLinesForPreset(preset DifficultyPreset) float64 {
	if preset == DifficultyEasy {
		return 25
	}
	return 0
}

// ApplyPreset modifies the config based on a difficulty preset.
// Each cost_scale_factor f becomes 1 + (f-1)*growth.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" || preset == DifficultyNormal {
		return
	}

	growth := CostGrowthForPreset(preset)
	cfg.Session.InitialLines += StartingLinesForPreset(preset)
	cfg.Session.DefaultCostScale = scaleGrowth(cfg.Session.DefaultCostScale, growth)
	for i := range cfg.Upgrades {
		if cfg.Upgrades[i].CostScaleFactor > 0 {
			cfg.Upgrades[i].CostScaleFactor = scaleGrowth(cfg.Upgrades[i].CostScaleFactor, growth)
		}
	}
}

func scaleGrowth(factor, growth float64) float64 {
	return 1 + (factor-1)*growth
}

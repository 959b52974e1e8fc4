package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGameConfigParses(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML failed to parse: %v", err)
	}

	if len(cfg.Upgrades) != 22 {
		t.Errorf("expected 22 upgrades, got %d", len(cfg.Upgrades))
	}
	if len(cfg.Sequence) == 0 {
		t.Error("expected a tutorial sequence")
	}
	if cfg.Session.OfferSlots != 3 {
		t.Errorf("OfferSlots = %d, expected 3", cfg.Session.OfferSlots)
	}
	if cfg.Scoring.Entities.Upper != 1e9 {
		t.Errorf("entities upper bound = %g, expected 1e9", cfg.Scoring.Entities.Upper)
	}

	seen := make(map[string]bool)
	for _, u := range cfg.Upgrades {
		if seen[u.Kind] {
			t.Errorf("duplicate upgrade kind %q", u.Kind)
		}
		seen[u.Kind] = true
	}
	for _, k := range cfg.Sequence {
		if !seen[k] {
			t.Errorf("sequence references undefined kind %q", k)
		}
	}
}

func TestParseRemainingPointer(t *testing.T) {
	data := []byte(`
upgrades:
  - kind: a
    base_cost: 1
    remaining: 2
  - kind: b
    base_cost: 1
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Upgrades[0].Remaining == nil || *cfg.Upgrades[0].Remaining != 2 {
		t.Errorf("expected remaining=2, got %v", cfg.Upgrades[0].Remaining)
	}
	if cfg.Upgrades[1].Remaining != nil {
		t.Error("omitted remaining should stay nil (unlimited)")
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("session:\n  initial_lines: 7\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Session.InitialLines != 7 {
		t.Errorf("InitialLines = %g, expected 7", cfg.Session.InitialLines)
	}
	if cfg.Session.OfferSlots != 3 || cfg.Session.CharsPerKey != 4 {
		t.Errorf("session defaults not applied: %+v", cfg.Session)
	}
	if cfg.Scoring.Lines != DefaultScoringConfig().Lines {
		t.Errorf("scoring defaults not applied: %+v", cfg.Scoring.Lines)
	}
	if len(cfg.Entities.Palette) == 0 {
		t.Error("entity palette defaults not applied")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("upgrades: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("session:\n  offer_slots: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Session.OfferSlots != 5 {
		t.Errorf("OfferSlots = %d, expected 5", cfg.Session.OfferSlots)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadFiller(t *testing.T) {
	text, err := LoadFiller(SessionConfig{})
	if err != nil || text != DefaultFiller() {
		t.Fatalf("expected embedded filler, err=%v", err)
	}

	path := filepath.Join(t.TempDir(), "filler.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	text, err = LoadFiller(SessionConfig{FillerPath: path})
	if err != nil {
		t.Fatalf("LoadFiller() failed: %v", err)
	}
	if text != "a\nb\n" {
		t.Errorf("LoadFiller() = %q", text)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		wantScale float64
		wantLines float64
	}{
		{DifficultyNormal, 1.2, 0},
		{DifficultyEasy, 1.15, 25},
		{DifficultyHard, 1.25, 0},
		{DifficultyFixed, 1.0, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := GameConfig{
				Session:  SessionConfig{DefaultCostScale: 1.2},
				Upgrades: []UpgradeSpec{{Kind: "a", CostScaleFactor: 1.2}},
			}
			ApplyPreset(&cfg, tc.preset)

			if diff := cfg.Upgrades[0].CostScaleFactor - tc.wantScale; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CostScaleFactor = %g, expected %g", cfg.Upgrades[0].CostScaleFactor, tc.wantScale)
			}
			if cfg.Session.InitialLines != tc.wantLines {
				t.Errorf("InitialLines = %g, expected %g", cfg.Session.InitialLines, tc.wantLines)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("expected hard preset")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should map to empty")
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/codejam/internal/economy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func resultWithOverall(mode string, overall float64) Result {
	var scores economy.Scores
	for i := range scores {
		scores[i] = overall
	}
	return Result{Player: "tester", Mode: mode, Seed: 7, Lines: overall * 100, Scores: scores}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveResult(resultWithOverall("play", 3))
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	r, err := store.ResultByID(id)
	if err != nil || r == nil {
		t.Fatalf("ResultByID() = %v, %v", r, err)
	}
}

func TestSaveAndFetchResult(t *testing.T) {
	store := openTestStore(t)

	state := economy.State{Lines: 420, Entities: 96, TechDebt: 7.5, UpgradesInstalled: 13}
	scores := economy.CalculateScores(state, economy.DefaultScoreBounds())
	id, err := store.SaveResult(NewResult("ada", "play", 99, state, scores, 312.5))
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("ID %q is not a UUID: %v", id, err)
	}

	r, err := store.ResultByID(id)
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("result not found")
	}

	if r.Player != "ada" || r.Mode != "play" || r.Seed != 99 {
		t.Errorf("identity = %q/%q/%d", r.Player, r.Mode, r.Seed)
	}
	if r.Lines != 420 || r.Entities != 96 || r.TechDebt != 7.5 || r.Upgrades != 13 {
		t.Errorf("counters = %+v", r)
	}
	if r.Scores != scores {
		t.Errorf("scores = %v, expected %v", r.Scores, scores)
	}
	if r.Duration != 312.5 {
		t.Errorf("duration = %g", r.Duration)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestResultByIDMissing(t *testing.T) {
	store := openTestStore(t)

	r, err := store.ResultByID("does-not-exist")
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil, got %+v", r)
	}
}

func TestTopResults(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Result{
		resultWithOverall("play", 2.5),
		resultWithOverall("play", 4.1),
		resultWithOverall("greedy", 3.3),
		resultWithOverall("play", 1.2),
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	all, err := store.TopResults("", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(all))
	}
	want := []float64{4.1, 3.3, 2.5, 1.2}
	for i, r := range all {
		if r.Scores.Overall() != want[i] {
			t.Errorf("result %d overall = %g, expected %g", i, r.Scores.Overall(), want[i])
		}
	}

	play, err := store.TopResults("play", 2)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(play) != 2 || play[0].Scores.Overall() != 4.1 || play[1].Scores.Overall() != 2.5 {
		t.Errorf("play top 2 = %+v", play)
	}
}

func TestBestOverall(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestOverall("")
	if err != nil {
		t.Fatalf("BestOverall() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty store, got %g", best)
	}

	store.SaveResult(resultWithOverall("play", 3.5))
	store.SaveResult(resultWithOverall("random", 4.5))

	if best, _ := store.BestOverall("play"); best != 3.5 {
		t.Errorf("best play = %g, expected 3.5", best)
	}
	if best, _ := store.BestOverall(""); best != 4.5 {
		t.Errorf("best overall = %g, expected 4.5", best)
	}
}

func TestClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(resultWithOverall("play", 3))
	store.SaveResult(resultWithOverall("greedy", 3))

	if err := store.ClearResults("play"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	left, _ := store.TopResults("", 10)
	if len(left) != 1 || left[0].Mode != "greedy" {
		t.Errorf("after clearing play: %+v", left)
	}

	if err := store.ClearResults(""); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	left, _ = store.TopResults("", 10)
	if len(left) != 0 {
		t.Errorf("expected empty store, got %d results", len(left))
	}
}

func TestModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(resultWithOverall("play", 2))
	store.SaveResult(resultWithOverall("play", 4))
	store.SaveResult(resultWithOverall("frugal", 3))

	stats, err := store.ModeStats()
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(stats))
	}

	play := stats["play"]
	if play == nil {
		t.Fatal("missing play stats")
	}
	if play.Count != 2 || play.BestOverall != 4 || play.AvgOverall != 3 || play.TotalLines != 600 {
		t.Errorf("play stats = %+v", play)
	}
}

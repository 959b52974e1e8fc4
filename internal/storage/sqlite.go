// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/codejam/internal/economy"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished session.
type Result struct {
	ID        string
	Player    string
	Mode      string // "play", "ssh" or an autoplay strategy ID
	Seed      int64
	Lines     float64
	Entities  float64
	TechDebt  float64
	Upgrades  int
	Scores    economy.Scores
	Duration  float64 // Simulated seconds
	CreatedAt time.Time
}

// NewResult builds a result from a final engine state.
func NewResult(player, mode string, seed int64, s economy.State, scores economy.Scores, duration float64) Result {
	return Result{
		Player:   player,
		Mode:     mode,
		Seed:     seed,
		Lines:    s.Lines,
		Entities: s.Entities,
		TechDebt: s.TechDebt,
		Upgrades: int(s.UpgradesInstalled), //#nosec G115 -- install counts are small
		Scores:   scores,
		Duration: duration,
	}
}

// Stats contains aggregated statistics over saved results.
type Stats struct {
	Mode        string
	Count       int
	BestOverall float64
	AvgOverall  float64
	TotalLines  float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			lines REAL NOT NULL DEFAULT 0,
			entities REAL NOT NULL DEFAULT 0,
			tech_debt REAL NOT NULL DEFAULT 0,
			upgrades INTEGER NOT NULL DEFAULT 0,
			fun_score REAL NOT NULL,
			presentation_score REAL NOT NULL,
			theme_score REAL NOT NULL,
			entities_score REAL NOT NULL,
			lines_score REAL NOT NULL,
			overall REAL NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(overall DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished session and returns its generated ID.
func (s *Store) SaveResult(r Result) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, player, mode, seed, lines, entities, tech_debt, upgrades,
		  fun_score, presentation_score, theme_score, entities_score, lines_score, overall, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Player, r.Mode, r.Seed, r.Lines, r.Entities, r.TechDebt, r.Upgrades,
		r.Scores[economy.ScoreFun],
		r.Scores[economy.ScorePresentation],
		r.Scores[economy.ScoreTheme],
		r.Scores[economy.ScoreEntities],
		r.Scores[economy.ScoreLines],
		r.Scores[economy.ScoreOverall],
		r.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return id, nil
}

const resultColumns = `id, player, mode, seed, lines, entities, tech_debt, upgrades,
	fun_score, presentation_score, theme_score, entities_score, lines_score, overall,
	duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var createdAt any
	err := row.Scan(
		&r.ID, &r.Player, &r.Mode, &r.Seed,
		&r.Lines, &r.Entities, &r.TechDebt, &r.Upgrades,
		&r.Scores[economy.ScoreFun],
		&r.Scores[economy.ScorePresentation],
		&r.Scores[economy.ScoreTheme],
		&r.Scores[economy.ScoreEntities],
		&r.Scores[economy.ScoreLines],
		&r.Scores[economy.ScoreOverall],
		&r.Duration,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// TopResults retrieves the best N results, ordered by overall score.
// An empty mode matches every mode.
func (s *Store) TopResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE ? = '' OR mode = ?
		 ORDER BY overall DESC, created_at ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ResultByID retrieves one result. Returns nil if it does not exist.
func (s *Store) ResultByID(id string) (*Result, error) {
	r, err := scanResult(s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// BestOverall returns the highest overall score for a mode ("" for all).
// Returns 0 if no results exist.
func (s *Store) BestOverall(mode string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(overall) FROM results WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best result: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

// ClearResults deletes the results of a mode ("" deletes everything).
func (s *Store) ClearResults(mode string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// ModeStats retrieves aggregated statistics per mode.
func (s *Store) ModeStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(overall), AVG(overall), SUM(lines), MAX(created_at)
		 FROM results
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Count, &st.BestOverall, &st.AvgOverall, &st.TotalLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

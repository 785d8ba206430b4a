// Package storage keeps run history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/moofield/internal/core"
)

// Run sources.
const (
	SourcePlay = "play"
	SourceSSH  = "ssh"
	SourceSim  = "sim"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished session.
type RunRecord struct {
	ID          int64
	Mode        string
	Source      string
	Seed        int64
	Score       int
	Age         int
	Kills       int
	Gold        int
	SurvivedSec int
	CreatedAt   time.Time
}

// NewRunRecord builds a record from a session's final stats.
func NewRunRecord(mode, source string, seed int64, f core.RunStats) RunRecord {
	return RunRecord{
		Mode:        mode,
		Source:      source,
		Seed:        seed,
		Score:       f.Score,
		Age:         f.Age,
		Kills:       f.Kills,
		Gold:        f.Gold,
		SurvivedSec: f.SurvivedSec,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'play',
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			age INTEGER NOT NULL DEFAULT 1,
			kills INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			survived_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);
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

// SaveRun records a finished session and returns its id.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Source == "" {
		r.Source = SourcePlay
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (mode, source, seed, score, age, kills, gold, survived_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Source, r.Seed, r.Score, r.Age, r.Kills, r.Gold, r.SurvivedSec,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, mode, source, seed, score, age, kills, gold, survived_secs, created_at`

// TopRuns returns the best runs of a mode, highest score first.
func (s *Store) TopRuns(mode string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns returns the latest runs across all modes, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Source, &r.Seed, &r.Score, &r.Age,
			&r.Kills, &r.Gold, &r.SurvivedSec, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver representations of DATETIME.
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

// BestScore returns the highest score for a mode, or 0 if none.
func (s *Store) BestScore(mode string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(score) FROM runs WHERE mode = ?`, mode).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearRuns deletes every run of a mode.
func (s *Store) ClearRuns(mode string) error {
	if _, err := s.db.Exec(`DELETE FROM runs WHERE mode = ?`, mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ModeStats aggregates the runs of one mode.
type ModeStats struct {
	Mode        string
	Runs        int
	BestScore   int
	AvgScore    float64
	BestAge     int
	TotalKills  int64
	LongestSecs int
	LastPlayed  time.Time
}

// Stats returns aggregates for a mode. A mode with no runs yields zero stats.
func (s *Store) Stats(mode string) (*ModeStats, error) {
	st := &ModeStats{Mode: mode}
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(age), 0),
		        COALESCE(SUM(kills), 0), COALESCE(MAX(survived_secs), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&st.Runs, &st.BestScore, &st.AvgScore, &st.BestAge, &st.TotalKills, &st.LongestSecs, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// AllStats returns aggregates for every mode that has runs.
func (s *Store) AllStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(age), SUM(kills), MAX(survived_secs), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var last any
		if err := rows.Scan(&st.Mode, &st.Runs, &st.BestScore, &st.AvgScore, &st.BestAge,
			&st.TotalKills, &st.LongestSecs, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(last)
		stats[st.Mode] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

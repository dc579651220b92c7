// Package storage provides the SQLite-based run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records how a run was configured and how far it got, never
// the grid itself: a run is replayed by seeding a fresh simulator with the
// same rule, layout and seed.
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
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunEntry is a single journaled run.
type RunEntry struct {
	ID          int64
	RunID       string
	Preset      string
	Rule        string // R/T/C/N notation
	Radius      int
	Threshold   int
	States      int
	Shape       string
	Width       int
	Height      int
	Margin      int
	Frame       int
	Seed        int64
	Generations int64
	Transitions int64
	Source      string // "local" or "ssh"
	CreatedAt   time.Time
}

// RuleStats contains aggregated statistics for one rule.
type RuleStats struct {
	Rule        string
	Runs        int
	Generations int64
	LongestRun  int64
	LastRun     time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL DEFAULT '',
			rule TEXT NOT NULL,
			radius INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			states INTEGER NOT NULL,
			shape TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			margin INTEGER NOT NULL DEFAULT 0,
			frame INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			generations INTEGER NOT NULL DEFAULT 0,
			transitions INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_rule ON runs(rule);
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

// SaveRun appends a run to the journal. A missing RunID is generated.
// Returns the run ID.
func (s *Store) SaveRun(e RunEntry) (string, error) {
	if e.RunID == "" {
		e.RunID = NewRunID()
	}
	if e.Source == "" {
		e.Source = "local"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, preset, rule, radius, threshold, states, shape, width, height,
		  margin, frame, seed, generations, transitions, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Preset, e.Rule, e.Radius, e.Threshold, e.States, e.Shape,
		e.Width, e.Height, e.Margin, e.Frame, e.Seed, e.Generations,
		e.Transitions, e.Source,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return e.RunID, nil
}

const runColumns = `id, run_id, preset, rule, radius, threshold, states, shape,
	width, height, margin, frame, seed, generations, transitions, source, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunEntry, error) {
	var e RunEntry
	var createdAt any
	err := row.Scan(
		&e.ID, &e.RunID, &e.Preset, &e.Rule, &e.Radius, &e.Threshold,
		&e.States, &e.Shape, &e.Width, &e.Height, &e.Margin, &e.Frame,
		&e.Seed, &e.Generations, &e.Transitions, &e.Source, &createdAt,
	)
	if err != nil {
		return e, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
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
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunByID retrieves a run by its run ID or by a unique prefix of it.
// Returns nil if no run matches.
func (s *Store) RunByID(runID string) (*RunEntry, error) {
	if runID == "" {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE substr(run_id, 1, length(?)) = ?
		 ORDER BY run_id = ? DESC, id DESC
		 LIMIT 2`,
		runID, runID, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var matches []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, nil
	case matches[0].RunID == runID || len(matches) == 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("storage: run id prefix %q is ambiguous", runID)
	}
}

// ClearRuns deletes every journaled run.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// CountRuns returns the number of journaled runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// GetRuleStats retrieves aggregated statistics for one rule.
// Returns zero stats if the rule was never run.
func (s *Store) GetRuleStats(rule string) (*RuleStats, error) {
	stats := &RuleStats{Rule: rule}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(generations), 0), COALESCE(MAX(generations), 0)
		 FROM runs WHERE rule = ?`,
		rule,
	).Scan(&stats.Runs, &stats.Generations, &stats.LongestRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get rule stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE rule = ? ORDER BY id DESC LIMIT 1`,
		rule,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// GetAllRuleStats retrieves statistics for every rule that has been run.
func (s *Store) GetAllRuleStats() (map[string]*RuleStats, error) {
	rows, err := s.db.Query(
		`SELECT rule, COUNT(*), SUM(generations), MAX(generations), MAX(created_at)
		 FROM runs
		 GROUP BY rule`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get rule stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RuleStats)
	for rows.Next() {
		var rs RuleStats
		var lastRun any
		if err := rows.Scan(&rs.Rule, &rs.Runs, &rs.Generations, &rs.LongestRun, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		rs.LastRun = parseTime(lastRun)
		stats[rs.Rule] = &rs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Package storage keeps a per-process journal of runs and level results.
// It uses the pure-Go modernc.org/sqlite driver on an in-memory database,
// so nothing outlives the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUnknownRun is returned for a run ID the journal has never issued.
var ErrUnknownRun = errors.New("storage: unknown run")

// Outcome is how a level ended.
type Outcome string

const (
	OutcomeCleared Outcome = "cleared"
	OutcomeLost    Outcome = "lost"
)

// LevelResult is one finished level of a run.
type LevelResult struct {
	Level   int
	Outcome Outcome
	Score   int // cumulative run score when the level ended
	Lives   int
	Kills   int // enemies killed during this level
	Ticks   int // simulation ticks spent in the level
}

// RunSummary aggregates a run's level results.
type RunSummary struct {
	RunID     string
	Player    string
	StartedAt time.Time
	Levels    int // recorded levels
	MaxLevel  int
	Score     int
	Kills     int
	Ticks     int
	Over      bool // a level was lost
}

// Journal is an in-memory SQLite store. It is safe for concurrent use.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// OpenJournal creates an empty in-memory journal.
func OpenJournal() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			started_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			ticks INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_levels_run ON levels(run_id);
		CREATE INDEX IF NOT EXISTS idx_levels_score ON levels(score DESC);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the database; the journal's contents are gone afterwards.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// StartRun registers a new run and returns its ID.
func (j *Journal) StartRun(player string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.Exec(
		"INSERT INTO runs (id, player, started_at) VALUES (?, ?, ?)",
		id, player, j.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// RecordLevel appends a level result to a run.
func (j *Journal) RecordLevel(runID string, r LevelResult) error {
	if r.Outcome != OutcomeCleared && r.Outcome != OutcomeLost {
		return fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}
	res, err := j.db.Exec(`
		INSERT INTO levels (run_id, level, outcome, score, lives, kills, ticks)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM runs WHERE id = ?)`,
		runID, r.Level, string(r.Outcome), r.Score, r.Lives, r.Kills, r.Ticks, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record level: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot record level: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return nil
}

const summarySelect = `
	SELECT r.id, r.player, r.started_at,
		COUNT(l.id),
		COALESCE(MAX(l.level), 0),
		COALESCE(MAX(l.score), 0),
		COALESCE(SUM(l.kills), 0),
		COALESCE(SUM(l.ticks), 0),
		COALESCE(MAX(l.outcome = 'lost'), 0)
	FROM runs r
	LEFT JOIN levels l ON l.run_id = r.id`

// RunSummary returns the aggregate of one run.
func (j *Journal) RunSummary(runID string) (RunSummary, error) {
	row := j.db.QueryRow(summarySelect+" WHERE r.id = ? GROUP BY r.id", runID)
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	if err != nil {
		return RunSummary{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return s, nil
}

// Runs returns up to limit run summaries, newest first.
// A limit of zero or less returns all runs.
func (j *Journal) Runs(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(summarySelect+" GROUP BY r.id ORDER BY r.seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating runs: %w", err)
	}
	return runs, nil
}

// Levels returns a run's level results in the order they were recorded.
func (j *Journal) Levels(runID string) ([]LevelResult, error) {
	rows, err := j.db.Query(
		"SELECT level, outcome, score, lives, kills, ticks FROM levels WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var levels []LevelResult
	for rows.Next() {
		var r LevelResult
		var outcome string
		if err := rows.Scan(&r.Level, &outcome, &r.Score, &r.Lives, &r.Kills, &r.Ticks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level: %w", err)
		}
		r.Outcome = Outcome(outcome)
		levels = append(levels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating levels: %w", err)
	}
	return levels, nil
}

// BestScore returns the highest score recorded in any run, or 0.
func (j *Journal) BestScore() (int, error) {
	var best int
	err := j.db.QueryRow("SELECT COALESCE(MAX(score), 0) FROM levels").Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get best score: %w", err)
	}
	return best, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (RunSummary, error) {
	var s RunSummary
	var started int64
	var over int
	err := row.Scan(&s.RunID, &s.Player, &started, &s.Levels, &s.MaxLevel, &s.Score, &s.Kills, &s.Ticks, &over)
	if err != nil {
		return RunSummary{}, err
	}
	s.StartedAt = time.Unix(0, started)
	s.Over = over != 0
	return s, nil
}

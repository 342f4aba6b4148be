package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunsDB stores the audit trail of validation runs.
type RunsDB struct {
	conn *sql.DB
}

// TierSummary is the per-tier outcome of one run.
type TierSummary struct {
	Tier      string
	BillingID string
	Extracted int
	Matched   int
	MediaGUID string
	TagsFound int
}

// Run is one completed validation run.
type Run struct {
	ID         string
	EventName  string
	Year       int
	OutputPath string
	StartedAt  time.Time
	Duration   time.Duration
	Tiers      []TierSummary
}

// NewRunsDB opens (creating if needed) the run-history database.
func NewRunsDB(path string) (*RunsDB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open runs database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to runs database: %w", err)
	}

	db := &RunsDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *RunsDB) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS validation_runs (
		id TEXT PRIMARY KEY,
		event_name TEXT NOT NULL,
		year INTEGER NOT NULL,
		output_path TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS validation_run_tiers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES validation_runs(id),
		tier TEXT NOT NULL,
		billing_id TEXT NOT NULL,
		extracted INTEGER NOT NULL,
		matched INTEGER NOT NULL,
		media_guid TEXT NOT NULL DEFAULT '',
		tags_found INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_validation_runs_started ON validation_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_validation_run_tiers_run ON validation_run_tiers(run_id);
	`

	if _, err := db.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create run history tables: %w", err)
	}
	return nil
}

// SaveRun records a completed run and its per-tier outcomes.
func (db *RunsDB) SaveRun(run *Run) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO validation_runs (id, event_name, year, output_path, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.EventName, run.Year, run.OutputPath, run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO validation_run_tiers (run_id, tier, billing_id, extracted, matched, media_guid, tags_found)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare tier statement: %w", err)
	}
	defer stmt.Close()

	for _, tier := range run.Tiers {
		_, err := stmt.Exec(run.ID, tier.Tier, tier.BillingID, tier.Extracted, tier.Matched, tier.MediaGUID, tier.TagsFound)
		if err != nil {
			return fmt.Errorf("failed to insert tier summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first, tiers attached.
func (db *RunsDB) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, event_name, year, output_path, started_at, duration_ms
		FROM validation_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.EventName, &run.Year, &run.OutputPath, &run.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	for i := range runs {
		tiers, err := db.runTiers(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Tiers = tiers
	}
	return runs, nil
}

func (db *RunsDB) runTiers(runID string) ([]TierSummary, error) {
	rows, err := db.conn.Query(`
		SELECT tier, billing_id, extracted, matched, media_guid, tags_found
		FROM validation_run_tiers
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier summaries: %w", err)
	}
	defer rows.Close()

	var tiers []TierSummary
	for rows.Next() {
		var t TierSummary
		if err := rows.Scan(&t.Tier, &t.BillingID, &t.Extracted, &t.Matched, &t.MediaGUID, &t.TagsFound); err != nil {
			return nil, fmt.Errorf("failed to scan tier summary: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// Close closes the underlying connection.
func (db *RunsDB) Close() error {
	return db.conn.Close()
}

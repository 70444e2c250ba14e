package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status is the terminal state of one processed file.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry is one ledger row: the outcome of processing a single target file.
type Entry struct {
	ID           int64
	RunID        string
	File         string
	OutputPath   string
	Status       Status
	Rows         int
	Matched      int
	Unresolved   int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RunStats aggregates a run's entries.
type RunStats struct {
	Files      int
	Completed  int
	Failed     int
	Rows       int
	Matched    int
	Unresolved int
}

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS run_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    file TEXT NOT NULL,
    output_path TEXT,
    status TEXT NOT NULL,
    rows INTEGER NOT NULL DEFAULT 0,
    matched INTEGER NOT NULL DEFAULT 0,
    unresolved INTEGER NOT NULL DEFAULT 0,
    error_message TEXT,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id);
`

// Open initializes or connects to the ledger database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// RecordFile inserts one per-file outcome.
func (s *Store) RecordFile(ctx context.Context, entry Entry) (int64, error) {
	if entry.RunID == "" {
		return 0, errors.New("run id is required")
	}
	if entry.File == "" {
		return 0, errors.New("file is required")
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO run_files (
            run_id, file, output_path, status, rows, matched, unresolved,
            error_message, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.File,
		nullableString(entry.OutputPath),
		string(entry.Status),
		entry.Rows,
		entry.Matched,
		entry.Unresolved,
		nullableString(entry.ErrorMessage),
		entry.StartedAt.UTC().Format(time.RFC3339Nano),
		entry.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

const entryColumns = "id, run_id, file, output_path, status, rows, matched, unresolved, error_message, started_at, finished_at"

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM run_files ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Run returns every entry of a run in insertion order.
func (s *Store) Run(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM run_files WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats aggregates one run's entries.
func (s *Store) Stats(ctx context.Context, runID string) (RunStats, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1),
            COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(rows), 0), COALESCE(SUM(matched), 0), COALESCE(SUM(unresolved), 0)
        FROM run_files WHERE run_id = ?`,
		string(StatusCompleted),
		string(StatusFailed),
		runID,
	)
	var stats RunStats
	if err := row.Scan(&stats.Files, &stats.Completed, &stats.Failed, &stats.Rows, &stats.Matched, &stats.Unresolved); err != nil {
		return RunStats{}, fmt.Errorf("run stats: %w", err)
	}
	return stats, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry        Entry
		outputPath   sql.NullString
		statusStr    string
		errorMessage sql.NullString
		startedRaw   string
		finishedRaw  string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.File,
		&outputPath,
		&statusStr,
		&entry.Rows,
		&entry.Matched,
		&entry.Unresolved,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return Entry{}, fmt.Errorf("scan ledger entry: %w", err)
	}
	entry.OutputPath = outputPath.String
	entry.Status = Status(statusStr)
	entry.ErrorMessage = errorMessage.String
	if started, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		entry.StartedAt = started
	}
	if finished, err := time.Parse(time.RFC3339Nano, finishedRaw); err == nil {
		entry.FinishedAt = finished
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

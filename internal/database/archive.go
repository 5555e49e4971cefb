package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Olyastel/Site-parsing/internal/model"
)

// FileName is the archive file inside the archive directory.
const FileName = "courtscan.db"

// ErrRunNotFound is returned when no archived run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Archive stores crawl runs.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the SQLite database file.
	path string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the archive in dir.
// If CreateIfNotExists is false and the archive does not exist, an error is
// returned.
func Open(dir string, opts Options) (*Archive, error) {
	path := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s", path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := path + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{db: db, path: path}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Path returns the database file path.
func (a *Archive) Path() string {
	return a.path
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		base_url TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		partial INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		sections INTEGER NOT NULL,
		subsections INTEGER NOT NULL,
		judges INTEGER NOT NULL,
		with_details INTEGER NOT NULL,
		directory_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun archives run and sets run.ID.
func (a *Archive) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	dir := run.Directory
	if dir == nil {
		dir = model.Directory{}
	}
	dirJSON, err := json.Marshal(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize directory: %w", err)
	}

	stats := run.Stats()

	query := `
	INSERT INTO runs (base_url, started_at, finished_at, partial, error,
		sections, subsections, judges, with_details, directory_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := a.db.ExecContext(ctx, query,
		run.BaseURL,
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.FinishedAt),
		run.Partial,
		run.ErrorMessage,
		stats.Sections,
		stats.Subsections,
		stats.Judges,
		stats.WithDetails,
		string(dirJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]model.RunInfo, error) {
	query := `
	SELECT id, base_url, started_at, finished_at, partial, COALESCE(error, ''),
		sections, subsections, judges, with_details
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunInfo
	for rows.Next() {
		var (
			info              model.RunInfo
			started, finished string
		)
		if err := rows.Scan(
			&info.ID, &info.BaseURL, &started, &finished, &info.Partial, &info.ErrorMessage,
			&info.Stats.Sections, &info.Stats.Subsections, &info.Stats.Judges, &info.Stats.WithDetails,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.StartedAt = parseTimestamp(started)
		info.FinishedAt = parseTimestamp(finished)
		runs = append(runs, info)
	}

	return runs, rows.Err()
}

// GetRun returns the archived run with the given id, including its
// directory. It returns ErrRunNotFound when no such run exists.
func (a *Archive) GetRun(ctx context.Context, id int64) (*model.Run, error) {
	query := `
	SELECT id, base_url, started_at, finished_at, partial, COALESCE(error, ''), directory_json
	FROM runs
	WHERE id = ?
	`

	var (
		run               model.Run
		started, finished string
		dirJSON           string
	)
	err := a.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.BaseURL, &started, &finished, &run.Partial, &run.ErrorMessage, &dirJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := json.Unmarshal([]byte(dirJSON), &run.Directory); err != nil {
		return nil, fmt.Errorf("failed to parse archived directory: %w", err)
	}
	run.StartedAt = parseTimestamp(started)
	run.FinishedAt = parseTimestamp(finished)

	return &run, nil
}

// LatestRun returns the most recent complete run. Partial runs are skipped.
func (a *Archive) LatestRun(ctx context.Context) (*model.Run, error) {
	var id int64
	err := a.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE partial = 0 ORDER BY started_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest run: %w", ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	return a.GetRun(ctx, id)
}

// timestampFormats contains the formats parseTimestamp accepts.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp returns the zero time for unparseable values.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

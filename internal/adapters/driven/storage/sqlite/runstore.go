package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/overtone-labs/stagehand/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is a SQLite-based implementation of driven.RunStore.
type RunStore struct {
	db   *sql.DB
	path string
}

// NewRunStore creates a new SQLite run store at the specified data
// directory. If dataDir is empty, defaults to ~/.stagehand/data/runs.db.
func NewRunStore(dataDir string) (*RunStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".stagehand", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &RunStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *RunStore) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *RunStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a finished session report.
func (s *RunStore) Save(ctx context.Context, session domain.ImportSession) error {
	fallbacksJSON, err := json.Marshal(session.Fallbacks)
	if err != nil {
		return fmt.Errorf("marshalling fallback log: %w", err)
	}

	var failureKind, failureMessage sql.NullString
	if session.Failure != nil {
		failureKind = sql.NullString{String: string(session.Failure.Kind), Valid: true}
		failureMessage = sql.NullString{String: session.Failure.Message, Valid: true}
	}

	var finishedAt sql.NullTime
	if !session.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: session.FinishedAt.UTC(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
			(id, project_path, source_path, phase, failure_kind, failure_message, fallbacks, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_path = excluded.project_path,
			source_path = excluded.source_path,
			phase = excluded.phase,
			failure_kind = excluded.failure_kind,
			failure_message = excluded.failure_message,
			fallbacks = excluded.fallbacks,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, session.ID, session.ProjectPath, session.SourcePath, string(session.Phase),
		failureKind, failureMessage, string(fallbacksJSON),
		session.StartedAt.UTC(), finishedAt)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves one report by session ID.
func (s *RunStore) Get(ctx context.Context, id string) (*domain.ImportSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_path, source_path, phase, failure_kind, failure_message, fallbacks, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	return scanRun(row)
}

// List returns reports newest first.
func (s *RunStore) List(ctx context.Context, limit int) ([]domain.ImportSession, error) {
	query := `
		SELECT id, project_path, source_path, phase, failure_kind, failure_message, fallbacks, started_at, finished_at
		FROM runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportSession //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRunRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// scanRun scans a single run row.
func scanRun(row *sql.Row) (*domain.ImportSession, error) {
	var run domain.ImportSession
	var phase, fallbacksJSON string
	var failureKind, failureMessage sql.NullString
	var startedAt time.Time
	var finishedAt sql.NullTime

	if err := row.Scan(&run.ID, &run.ProjectPath, &run.SourcePath, &phase,
		&failureKind, &failureMessage, &fallbacksJSON, &startedAt, &finishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	return assembleRun(&run, phase, fallbacksJSON, failureKind, failureMessage, startedAt, finishedAt)
}

// scanRunRows scans a run from *sql.Rows.
func scanRunRows(rows *sql.Rows) (*domain.ImportSession, error) {
	var run domain.ImportSession
	var phase, fallbacksJSON string
	var failureKind, failureMessage sql.NullString
	var startedAt time.Time
	var finishedAt sql.NullTime

	if err := rows.Scan(&run.ID, &run.ProjectPath, &run.SourcePath, &phase,
		&failureKind, &failureMessage, &fallbacksJSON, &startedAt, &finishedAt); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	return assembleRun(&run, phase, fallbacksJSON, failureKind, failureMessage, startedAt, finishedAt)
}

// assembleRun fills the decoded columns into the session report.
func assembleRun(
	run *domain.ImportSession,
	phase, fallbacksJSON string,
	failureKind, failureMessage sql.NullString,
	startedAt time.Time,
	finishedAt sql.NullTime,
) (*domain.ImportSession, error) {
	run.Phase = domain.Phase(phase)
	run.StartedAt = startedAt

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	if failureKind.Valid {
		run.Failure = &domain.Failure{
			Kind:    domain.FailureKind(failureKind.String),
			Message: failureMessage.String,
		}
	}

	if err := json.Unmarshal([]byte(fallbacksJSON), &run.Fallbacks); err != nil {
		return nil, fmt.Errorf("unmarshalling fallback log: %w", err)
	}

	return run, nil
}

// Package history persists past classification runs for the audit trail.
// The engine itself owns no persisted state; the API layer drives a Store.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mdr-device-classifier/internal/domain"
)

// SQLiteStore implements domain.RunStore using SQLite, for standalone
// deployments with no external database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite run store. It creates the database
// file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRun scans a row into a ClassificationRun.
func scanRun(s scanner) (*domain.ClassificationRun, error) {
	run := &domain.ClassificationRun{}
	err := s.Scan(
		&run.ID, &run.ProfileJSON, &run.ResultingClass, &run.Confidence,
		&run.Justification, &run.CatalogVersion, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS classification_runs (
		id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		resulting_class TEXT NOT NULL,
		confidence TEXT NOT NULL,
		justification TEXT DEFAULT '',
		catalog_version TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON classification_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_resulting_class ON classification_runs(resulting_class);
	`

	_, err := db.Exec(schema)
	return err
}

// Save persists one classification run. Runs are immutable: saving an
// already-used ID is an error, never an update.
func (s *SQLiteStore) Save(ctx context.Context, run *domain.ClassificationRun) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_runs (
			id, profile, resulting_class, confidence,
			justification, catalog_version, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.ProfileJSON,
		run.ResultingClass,
		run.Confidence,
		run.Justification,
		run.CatalogVersion,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Get retrieves one run by ID. Returns nil, nil when not found.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.ClassificationRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, profile, resulting_class, confidence,
			justification, catalog_version, created_at
		FROM classification_runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return run, nil
}

// List returns runs with pagination, most recent first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.ClassificationRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile, resulting_class, confidence,
			justification, catalog_version, created_at
		FROM classification_runs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*domain.ClassificationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

// Count returns the total number of persisted runs.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM classification_runs").Scan(&count)
	return count, err
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

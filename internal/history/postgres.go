package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mdr-device-classifier/internal/domain"
)

// PostgresStore implements domain.RunStore using PostgreSQL, for
// deployments where several instances share one audit trail.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a run store on an existing database connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &PostgresStore{db: db}, nil
}

// OpenPostgres connects to PostgreSQL, verifies the connection and ensures
// the schema exists. The URL is a standard libpq DSN or postgres:// URL.
func OpenPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createPostgresSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func createPostgresSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS classification_runs (
		id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		resulting_class TEXT NOT NULL,
		confidence TEXT NOT NULL,
		justification TEXT DEFAULT '',
		catalog_version TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON classification_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_resulting_class ON classification_runs(resulting_class);
	`

	_, err := db.Exec(schema)
	return err
}

// Save persists one classification run.
func (s *PostgresStore) Save(ctx context.Context, run *domain.ClassificationRun) error {
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
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
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
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.ClassificationRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, profile, resulting_class, confidence,
			justification, catalog_version, created_at
		FROM classification_runs
		WHERE id = $1
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
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*domain.ClassificationRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile, resulting_class, confidence,
			justification, catalog_version, created_at
		FROM classification_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
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
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM classification_runs").Scan(&count)
	return count, err
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore keeps policy versions in PostgreSQL
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore creates a store over an open database
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// InitializeSchema creates the policy tables if they don't exist
func (s *PostgresStore) InitializeSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS policy_definitions (
		id SERIAL PRIMARY KEY,
		kind TEXT NOT NULL,
		signature TEXT NOT NULL,
		bodies TEXT[] NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(kind, signature)
	);

	CREATE TABLE IF NOT EXISTS policy_versions (
		id UUID PRIMARY KEY,
		version INT NOT NULL UNIQUE,
		description TEXT,
		source_file TEXT,
		source_id UUID,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS migration_history (
		id SERIAL PRIMARY KEY,
		version INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		success BOOLEAN NOT NULL,
		errors TEXT,
		diff TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_policy_definitions_kind ON policy_definitions(kind);
	`)
	return err
}

// CurrentVersion returns the latest applied version, or 0
func (s *PostgresStore) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM policy_versions
	`).Scan(&version)
	return version, err
}

// LoadModel loads the stored policy model
func (s *PostgresStore) LoadModel(ctx context.Context) (*PolicyModel, error) {
	model := NewPolicyModel()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT kind, signature, bodies FROM policy_definitions
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, signature string
		var bodies []string
		if err := rows.Scan(&kind, &signature, pq.Array(&bodies)); err != nil {
			return nil, err
		}
		section := model.Section(kind)
		if section == nil {
			return nil, fmt.Errorf("unknown definition kind %q", kind)
		}
		section[signature] = bodies
	}

	return model, rows.Err()
}

// ApplyModel replaces the stored definitions and records the version in one transaction
func (s *PostgresStore) ApplyModel(ctx context.Context, version int, description string, model *PolicyModel) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM policy_definitions`); err != nil {
		return fmt.Errorf("failed to clear definitions: %w", err)
	}

	for _, kind := range []string{KindRule, KindRuleType, KindResourceBlock} {
		for signature, bodies := range model.Section(kind) {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO policy_definitions (kind, signature, bodies)
				VALUES ($1, $2, $3)
			`, kind, signature, pq.Array(bodies))
			if err != nil {
				return fmt.Errorf("failed to insert %s %s: %w", kind, signature, err)
			}
		}
	}

	var sourceID any
	if model.SourceID != uuid.Nil {
		sourceID = model.SourceID
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO policy_versions (id, version, description, source_file, source_id)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), version, description, model.Source, sourceID)
	if err != nil {
		return fmt.Errorf("failed to record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecordHistory records an attempted migration
func (s *PostgresStore) RecordHistory(ctx context.Context, version int, success bool, errorMsg, diff string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO migration_history (version, success, errors, diff)
		VALUES ($1, $2, $3, $4)
	`, version, success, errorMsg, diff)
	return err
}

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Version is an applied policy version
type Version struct {
	Version     int
	Description string
	SourceFile  string
	AppliedAt   time.Time
}

// History lists applied versions, newest first
func (s *PostgresStore) History(ctx context.Context) ([]Version, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT version, COALESCE(description, ''), COALESCE(source_file, ''), applied_at
		FROM policy_versions
		ORDER BY version DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.Version, &v.Description, &v.SourceFile, &v.AppliedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/storage"
)

// PostgresStore implements storage.Storer for PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// New creates a PostgresStore and establishes a connection to the database.
// It also runs migrations to ensure the schema is up to date.
func New(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	store := &PostgresStore{db: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS sweeps (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	completed_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS status_records (
	url        TEXT PRIMARY KEY,
	platform   TEXT NOT NULL,
	location   TEXT NOT NULL,
	brand      TEXT NOT NULL,
	is_test    BOOLEAN NOT NULL DEFAULT FALSE,
	status     TEXT NOT NULL,
	reason     TEXT NOT NULL,
	source     TEXT NOT NULL,
	checked_at TIMESTAMPTZ NOT NULL
);
`
	_, err := s.db.Exec(ctx, schema)
	return err
}

// SaveSnapshot replaces the persisted snapshot wholesale in one transaction.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM status_records`); err != nil {
		return fmt.Errorf("failed to clear status records: %w", err)
	}

	insert := `
INSERT INTO status_records (url, platform, location, brand, is_test, status, reason, source, checked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, rec := range snap.Records {
		if _, err := tx.Exec(ctx, insert,
			rec.URL, string(rec.Platform), rec.Name, rec.Brand, rec.Test,
			string(rec.Status), rec.Reason, string(rec.Source), rec.CheckedAt,
		); err != nil {
			return fmt.Errorf("failed to insert status record: %w", err)
		}
	}

	meta := `
INSERT INTO sweeps (id, completed_at) VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET completed_at = EXCLUDED.completed_at`
	if _, err := tx.Exec(ctx, meta, snap.CompletedAt); err != nil {
		return fmt.Errorf("failed to record sweep metadata: %w", err)
	}

	return tx.Commit(ctx)
}

// LoadSnapshot retrieves the persisted snapshot, or storage.ErrNotFound if
// no sweep has ever been saved.
func (s *PostgresStore) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{Records: make(map[string]models.StatusRecord)}
	err := s.db.QueryRow(ctx, `SELECT completed_at FROM sweeps WHERE id = 1`).Scan(&snap.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep metadata: %w", err)
	}

	rows, err := s.db.Query(ctx, `
SELECT url, platform, location, brand, is_test, status, reason, source, checked_at
FROM status_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.StatusRecord
		var platform, status, source string
		if err := rows.Scan(&rec.URL, &platform, &rec.Name, &rec.Brand, &rec.Test,
			&status, &rec.Reason, &source, &rec.CheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status record row: %w", err)
		}
		rec.Platform = models.Platform(platform)
		rec.Status = models.Status(status)
		rec.Source = models.Source(source)
		snap.Records[rec.URL] = rec
	}
	return snap, rows.Err()
}

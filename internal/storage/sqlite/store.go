package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/storage"
)

// SQLiteStore implements storage.Storer for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a SQLiteStore and establishes a connection to the database
// file. It also runs migrations to ensure the schema is up to date.
func New(ctx context.Context, dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL", dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// migrate ensures the database schema is created. Only the latest sweep is
// kept: one row of sweep metadata plus one status row per URL.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS sweeps (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	completed_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS status_records (
	url        TEXT PRIMARY KEY,
	platform   TEXT NOT NULL,
	location   TEXT NOT NULL,
	brand      TEXT NOT NULL,
	is_test    INTEGER NOT NULL DEFAULT 0,
	status     TEXT NOT NULL,
	reason     TEXT NOT NULL,
	source     TEXT NOT NULL,
	checked_at TEXT NOT NULL
);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot replaces the persisted snapshot wholesale in one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM status_records`); err != nil {
		return fmt.Errorf("failed to clear status records: %w", err)
	}

	insert := `
INSERT INTO status_records (url, platform, location, brand, is_test, status, reason, source, checked_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, rec := range snap.Records {
		isTest := 0
		if rec.Test {
			isTest = 1
		}
		if _, err := tx.ExecContext(ctx, insert,
			rec.URL, string(rec.Platform), rec.Name, rec.Brand, isTest,
			string(rec.Status), rec.Reason, string(rec.Source),
			rec.CheckedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert status record: %w", err)
		}
	}

	meta := `
INSERT INTO sweeps (id, completed_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET completed_at = excluded.completed_at`
	if _, err := tx.ExecContext(ctx, meta, snap.CompletedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to record sweep metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the persisted snapshot, or storage.ErrNotFound if
// no sweep has ever been saved.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var completedAtStr string
	err := s.db.QueryRowContext(ctx, `SELECT completed_at FROM sweeps WHERE id = 1`).Scan(&completedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT url, platform, location, brand, is_test, status, reason, source, checked_at
FROM status_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status records: %w", err)
	}
	defer rows.Close()

	snap := &models.Snapshot{Records: make(map[string]models.StatusRecord)}
	snap.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAtStr)
	for rows.Next() {
		var rec models.StatusRecord
		var platform, status, source, checkedAtStr string
		var isTest int
		if err := rows.Scan(&rec.URL, &platform, &rec.Name, &rec.Brand, &isTest,
			&status, &rec.Reason, &source, &checkedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan status record row: %w", err)
		}
		rec.Platform = models.Platform(platform)
		rec.Status = models.Status(status)
		rec.Source = models.Source(source)
		rec.Test = isTest != 0
		rec.CheckedAt, _ = time.Parse(time.RFC3339Nano, checkedAtStr)
		snap.Records[rec.URL] = rec
	}
	return snap, rows.Err()
}

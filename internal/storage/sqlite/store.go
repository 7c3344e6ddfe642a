// Package sqlite is the SQLite implementation of the access store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/capgate/capgate/internal/storage"
)

// Store is a SQLite-backed AccessStore.
type Store struct {
	db *sql.DB
}

var _ storage.AccessStore = (*Store)(nil)

// New opens (creating if necessary) the access database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accesses (
			id TEXT PRIMARY KEY,
			capability_key TEXT NOT NULL,
			resource TEXT NOT NULL,
			backend_status INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accesses_key ON accesses(capability_key)`,
		`CREATE INDEX IF NOT EXISTS idx_accesses_created ON accesses(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}
	return nil
}

// RecordAccess inserts one access record. A missing ID or CreatedAt is
// filled in here.
func (s *Store) RecordAccess(ctx context.Context, rec *storage.AccessRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accesses (id, capability_key, resource, backend_status, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CapabilityKey, rec.Resource, rec.BackendStatus, rec.Duration.Nanoseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert access record: %w", err)
	}
	return nil
}

// RecentAccesses returns up to limit records, newest first.
func (s *Store) RecentAccesses(ctx context.Context, limit int) ([]*storage.AccessRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, capability_key, resource, backend_status, duration_ns, created_at
		 FROM accesses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query access records: %w", err)
	}
	defer rows.Close()

	var records []*storage.AccessRecord
	for rows.Next() {
		var rec storage.AccessRecord
		var durationNS int64
		if err := rows.Scan(&rec.ID, &rec.CapabilityKey, &rec.Resource, &rec.BackendStatus, &durationNS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan access record: %w", err)
		}
		rec.Duration = time.Duration(durationNS)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate access records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteStore keeps blobs in the kv_entries table of a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLiteStore. The kv_entries table must already exist;
// see database.OpenSQLite.
func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the value of key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM kv_entries WHERE name = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(%s) > %w", key, err)
	}
	return value, nil
}

// Put upserts the value of key.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE name = ?", key); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

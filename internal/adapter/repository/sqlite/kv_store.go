package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iho/pocketledger/internal/adapter/repository/retry"
)

const (
	getQuery = `SELECT value FROM kv_store WHERE key = ?`
	setQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// KVStore implements usecase.KVStore on a SQLite table.
type KVStore struct {
	db      *sql.DB
	retrier *retry.Retrier
}

// NewKVStore creates a KVStore on an opened, migrated database.
func NewKVStore(db *sql.DB, logger zerolog.Logger) *KVStore {
	return &KVStore{
		db:      db,
		retrier: retry.New(isBusy, logger),
	}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.retrier.Retry(ctx, func() error {
		return s.db.QueryRowContext(ctx, getQuery, key).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts value under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	err := s.retrier.Retry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, setQuery, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Ping checks the database connection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *KVStore) Close() error {
	return s.db.Close()
}

// isBusy reports whether err is a lock contention error that clears on retry.
func isBusy(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

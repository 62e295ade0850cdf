package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/adapter/repository/retry"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

const (
	getQuery = `SELECT value FROM kv_store WHERE key = $1`
	setQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// KVStore implements usecase.KVStore on a PostgreSQL table.
type KVStore struct {
	pool    pgxPool
	retrier *retry.Retrier
}

// NewKVStore creates a new KVStore.
func NewKVStore(pool *pgxpool.Pool, logger zerolog.Logger) *KVStore {
	return newKVStoreWithPool(pool, logger)
}

func newKVStoreWithPool(pool pgxPool, logger zerolog.Logger) *KVStore {
	return &KVStore{
		pool:    pool,
		retrier: retry.New(isRetryableError, logger),
	}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.retrier.Retry(ctx, func() error {
		return s.pool.QueryRow(ctx, getQuery, key).Scan(&value)
	})
	if errors.Is(err, pgx.ErrNoRows) {
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
		_, err := s.pool.Exec(ctx, setQuery, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Ping checks the database connection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}

// Package storage selects and opens the configured KVStore backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/adapter/repository/memory"
	pgrepo "github.com/iho/pocketledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/pocketledger/internal/adapter/repository/redis"
	sqliterepo "github.com/iho/pocketledger/internal/adapter/repository/sqlite"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/postgres"
	"github.com/iho/pocketledger/internal/infrastructure/redis"
	"github.com/iho/pocketledger/internal/infrastructure/sqlite"
	"github.com/iho/pocketledger/internal/usecase"
)

// Store is a KVStore that can report readiness and release its resources.
type Store interface {
	usecase.KVStore
	Ping(ctx context.Context) error
	Close() error
}

// Backend bundles the ledger store with the idempotency store that fits it.
type Backend struct {
	Name        string
	Store       Store
	Idempotency usecase.IdempotencyStore
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	return b.Store.Close()
}

// Open opens the backend named by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	logger = logger.With().Str("backend", cfg.StorageBackend).Logger()

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return &Backend{
			Name:        cfg.StorageBackend,
			Store:       memory.NewKVStore(),
			Idempotency: memory.NewIdempotencyStore(),
		}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("storage opened")

		return &Backend{
			Name:        cfg.StorageBackend,
			Store:       sqliterepo.NewKVStore(db, logger),
			Idempotency: memory.NewIdempotencyStore(),
		}, nil

	case config.BackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("storage opened")

		return &Backend{
			Name:        cfg.StorageBackend,
			Store:       pgrepo.NewKVStore(pool, logger),
			Idempotency: memory.NewIdempotencyStore(),
		}, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("prefix", cfg.RedisKeyPrefix).Msg("storage opened")

		return &Backend{
			Name:        cfg.StorageBackend,
			Store:       redisrepo.NewKVStore(client, cfg.RedisKeyPrefix),
			Idempotency: redisrepo.NewIdempotencyStore(client, cfg.RedisKeyPrefix),
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StorageBackend)
}

// ErrUnknownBackend is returned for an unsupported STORAGE_BACKEND.
var ErrUnknownBackend = errors.New("unknown storage backend")

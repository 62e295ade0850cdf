package usecase

import (
	"context"
	"time"

	"github.com/iho/pocketledger/internal/domain"
)

// KVStore is the string-valued key-value persistence the ledger is saved to.
type KVStore interface {
	// Get returns the value under key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Recorder receives ledger metrics. A nil Recorder disables recording.
type Recorder interface {
	ObserveMutation(operation string)
	ObserveRejection(operation string, err error)
	ObservePersist(key string, duration time.Duration, err error)
	ObserveCorruption(key string)
	ObserveTotals(totals domain.Totals)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release frees a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}

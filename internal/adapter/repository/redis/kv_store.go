package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces ledger keys in a shared Redis.
const DefaultKeyPrefix = "pocketledger:"

// KVStore implements usecase.KVStore using Redis string keys without expiry.
type KVStore struct {
	client *redis.Client
	prefix string
}

// NewKVStore creates a new KVStore. An empty prefix uses DefaultKeyPrefix.
func NewKVStore(client *redis.Client, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &KVStore{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a value by key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return val, true, nil
}

// Set stores a value with no TTL.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Ping checks the Redis connection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *KVStore) Close() error {
	return s.client.Close()
}

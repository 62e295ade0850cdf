package memory

import (
	"context"
	"sync"
)

// KVStore implements usecase.KVStore in process memory. Nothing survives a
// restart; it backs tests and the "memory" storage backend.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore creates an empty KVStore.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Ping always succeeds.
func (s *KVStore) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *KVStore) Close() error {
	return nil
}

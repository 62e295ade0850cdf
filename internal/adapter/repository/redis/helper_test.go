package redis

import (
	"sort"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient starts an in-process server; both are closed when the
// test ends.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// redisKeys lists every key on the server in sorted order.
func redisKeys(mr *miniredis.Miniredis) []string {
	keys := mr.Keys()
	sort.Strings(keys)
	return keys
}

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	infrasqlite "github.com/iho/pocketledger/internal/infrastructure/sqlite"
)

func newTestStore(t *testing.T, path string) *KVStore {
	t.Helper()

	db, err := infrasqlite.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewKVStore(db, zerolog.Nop())
}

func TestKVStoreGetMissing(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))

	val, found, err := store.Get(context.Background(), "transactions")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found || val != "" {
		t.Fatalf("expected missing key, got found=%v val=%q", found, val)
	}
}

func TestKVStoreSetOverwrites(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	if err := store.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	val, found, err := store.Get(ctx, "theme")
	if err != nil || !found {
		t.Fatalf("expected key, got found=%v err=%v", found, err)
	}
	if val != "dark" {
		t.Fatalf("expected dark, got %q", val)
	}
}

func TestKVStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	db, err := infrasqlite.Open(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := NewKVStore(db, zerolog.Nop()).Set(ctx, "spending_limit", "2500"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	db.Close()

	store := newTestStore(t, path)
	val, found, err := store.Get(ctx, "spending_limit")
	if err != nil || !found || val != "2500" {
		t.Fatalf("expected persisted value, got val=%q found=%v err=%v", val, found, err)
	}
}

func TestIsBusy(t *testing.T) {
	if isBusy(errors.New("other")) {
		t.Fatalf("expected generic error to be non-retryable")
	}
	if isBusy(nil) {
		t.Fatalf("expected nil to be non-retryable")
	}
}

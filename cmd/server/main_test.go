package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/pocketledger/internal/adapter/http"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/idgen"
	"github.com/iho/pocketledger/internal/infrastructure/storage"
	"github.com/iho/pocketledger/internal/usecase"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()

	t.Setenv("STORAGE_BACKEND", config.BackendMemory)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) (httpAdapter.RouterConfig, http.Handler) {
	t.Helper()

	backend, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	ledgerUC := usecase.NewLedgerUseCase(backend.Store, idgen.NewULIDGenerator())
	if err := ledgerUC.Load(context.Background()); err != nil {
		t.Fatalf("load ledger: %v", err)
	}

	routerCfg := newRouterConfig(cfg, backend, ledgerUC, zerolog.Nop())
	return routerCfg, httpAdapter.NewRouter(routerCfg)
}

func TestNewRouterConfig_Defaults(t *testing.T) {
	cfg := memoryConfig(t)

	routerCfg, router := newTestRouter(t, cfg)

	if routerCfg.IdempotencyStore == nil || routerCfg.IdempotencyTTL != cfg.IdempotencyTTL {
		t.Fatalf("expected idempotency to be wired")
	}
	if routerCfg.RateLimiter == nil {
		t.Fatalf("expected rate limiter to be wired by default")
	}
	if routerCfg.TokenVerifier != nil {
		t.Fatalf("expected auth to be off without a secret")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
}

func TestNewRouterConfig_Optional(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.IdempotencyEnabled = false
	cfg.RateLimitRPS = 0
	cfg.AuthSecret = "secret"
	cfg.AuthTokenTTL = time.Hour

	routerCfg, router := newTestRouter(t, cfg)

	if routerCfg.IdempotencyStore != nil || routerCfg.RateLimiter != nil {
		t.Fatalf("expected idempotency and rate limiting to be off")
	}
	if routerCfg.TokenVerifier == nil {
		t.Fatalf("expected token verifier with a secret")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestNewMetricsServer(t *testing.T) {
	server := newMetricsServer("9999")
	if server.Addr != ":9999" {
		t.Fatalf("unexpected address %s", server.Addr)
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint, got %d", rec.Code)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.HTTPPort = "0"
	cfg.MetricsPort = "0"
	cfg.HTTPShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

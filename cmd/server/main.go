package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/pocketledger/internal/adapter/http"
	"github.com/iho/pocketledger/internal/adapter/http/handler"
	"github.com/iho/pocketledger/internal/adapter/http/middleware"
	"github.com/iho/pocketledger/internal/infrastructure/auth"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/idgen"
	"github.com/iho/pocketledger/internal/infrastructure/logger"
	"github.com/iho/pocketledger/internal/infrastructure/metrics"
	"github.com/iho/pocketledger/internal/infrastructure/storage"
	"github.com/iho/pocketledger/internal/usecase"
)

const rateLimitCleanupInterval = 10 * time.Minute

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	ledgerUC := usecase.NewLedgerUseCase(
		backend.Store,
		idgen.NewULIDGenerator(),
		usecase.WithLogger(log),
		usecase.WithRecorder(metrics.New()),
	)
	if err := ledgerUC.Load(ctx); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	routerCfg := newRouterConfig(cfg, backend, ledgerUC, log)

	apiServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	metricsServer := newMetricsServer(cfg.MetricsPort)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Str("storage", backend.Name).Msg("starting server")
		return serve(apiServer)
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.MetricsPort).Msg("starting metrics server")
		return serve(metricsServer)
	})

	if routerCfg.RateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(rateLimitCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					routerCfg.RateLimiter.Cleanup(rateLimitCleanupInterval)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func newRouterConfig(cfg *config.Config, backend *storage.Backend, ledgerUC *usecase.LedgerUseCase, log zerolog.Logger) httpAdapter.RouterConfig {
	routerCfg := httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		EditHandler:        handler.NewEditHandler(ledgerUC),
		SavingsHandler:     handler.NewSavingsHandler(ledgerUC),
		SummaryHandler:     handler.NewSummaryHandler(ledgerUC),
		SettingsHandler:    handler.NewSettingsHandler(ledgerUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(backend.Store, backend.Name),
		Logger:             log,
	}

	if cfg.IdempotencyEnabled {
		routerCfg.IdempotencyStore = backend.Idempotency
		routerCfg.IdempotencyTTL = cfg.IdempotencyTTL
	}

	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.AuthEnabled() {
		routerCfg.TokenVerifier = auth.NewTokenManager(cfg.AuthSecret, cfg.AuthTokenTTL)
	}

	return routerCfg
}

func newMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func serve(server *http.Server) error {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

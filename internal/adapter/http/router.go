package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/adapter/http/handler"
	"github.com/iho/pocketledger/internal/adapter/http/middleware"
	"github.com/iho/pocketledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	EditHandler        *handler.EditHandler
	SavingsHandler     *handler.SavingsHandler
	SummaryHandler     *handler.SummaryHandler
	SettingsHandler    *handler.SettingsHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	TokenVerifier      middleware.TokenVerifier
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
			r.Use(middleware.RequireWriteScope)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
			r.Post("/{id}/edit", cfg.EditHandler.Begin)
		})

		// Edit session
		r.Get("/edit", cfg.EditHandler.Pending)
		r.Put("/edit", cfg.EditHandler.Commit)
		r.Delete("/edit", cfg.EditHandler.Cancel)

		// Savings
		r.Route("/savings", func(r chi.Router) {
			r.Post("/deposit", cfg.SavingsHandler.Deposit)
			r.Post("/withdraw", cfg.SavingsHandler.Withdraw)
		})

		// Aggregates
		r.Get("/summary", cfg.SummaryHandler.Summary)
		r.Get("/export", cfg.SummaryHandler.Export)

		// Goals and preferences
		r.Route("/goals", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.GetGoals)
			r.Put("/spending-limit", cfg.SettingsHandler.SetSpendingLimit)
			r.Put("/savings-target", cfg.SettingsHandler.SetSavingsTarget)
		})
		r.Get("/preferences/theme", cfg.SettingsHandler.GetTheme)
		r.Put("/preferences/theme", cfg.SettingsHandler.SetTheme)

		r.Post("/ledger/reset-month", cfg.LedgerHandler.ResetMonth)
	})

	return r
}

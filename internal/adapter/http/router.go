package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/bankcore/internal/adapter/http/handler"
	"github.com/iho/bankcore/internal/adapter/http/middleware"
	"github.com/iho/bankcore/internal/infrastructure/auth"
	"github.com/iho/bankcore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
	LoginRateLimit   float64
	LoginRateBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logging := middleware.NewLoggingMiddleware(cfg.Logger)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotency.Wrap)
		}

		// Public endpoints
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Limit)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})
		r.Post("/accounts", cfg.AccountHandler.Open)

		// Session-guarded endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Route("/accounts/{accountNumber}", func(r chi.Router) {
				r.Use(middleware.RequireAccountOwner)

				r.Get("/", cfg.AccountHandler.Get)
				r.Get("/balance", cfg.AccountHandler.GetBalance)
				r.Get("/transactions", cfg.AccountHandler.ListTransactions)
				r.Get("/consistency", cfg.AccountHandler.CheckConsistency)
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Post("/deposit", cfg.LedgerHandler.Deposit)
				r.Post("/withdraw", cfg.LedgerHandler.Withdraw)
				r.Post("/transfer", cfg.LedgerHandler.Transfer)
			})
		})
	})

	return r
}

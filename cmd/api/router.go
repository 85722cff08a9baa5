package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/config"
	"github.com/crucial707/expense-tracker/internal/exchange"
	"github.com/crucial707/expense-tracker/internal/handlers"
	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full HTTP surface. Kept separate from main so tests can
// stand up the whole stack against a mocked database.
func newRouter(db *sql.DB, cfg config.Config) chi.Router {
	userRepo := repo.NewUserRepo(db)
	expenseRepo := repo.NewExpenseRepo(db)

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})

	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: tokens}
	expenseHandler := &handlers.ExpenseHandler{Repo: expenseRepo}
	currencyHandler := &handlers.CurrencyHandler{
		Rates: exchange.NewClient(cfg.ExchangeBaseURL, cfg.ExchangeAPIKey),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Liveness, readiness, metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, http.StatusServiceUnavailable, "database unreachable", "Service not ready")
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public auth routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
	})

	// Currency passthrough (no auth required)
	r.Get("/currency/convert-currency", currencyHandler.Convert)

	// Owner-scoped expense routes
	r.Route("/expenses", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, userRepo))
		r.Post("/", expenseHandler.CreateExpense)
		r.Get("/", expenseHandler.ListExpenses)
		r.Get("/report/monthly", expenseHandler.MonthlyReport)
		r.Get("/{id}", expenseHandler.GetExpense)
		r.Put("/{id}", expenseHandler.UpdateExpense)
		r.Delete("/{id}", expenseHandler.DeleteExpense)
	})

	return r
}

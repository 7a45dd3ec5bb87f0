package httpserver

import (
	"net/http"

	"finance-tracker/internal/config"
	txdomain "finance-tracker/internal/domain/transactions"
	"finance-tracker/internal/transport/httpserver/handler"
	authmw "finance-tracker/internal/transport/httpserver/middleware"
	"finance-tracker/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, users authmw.UserSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(authmw.RequestLogContext)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, users, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Me)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", handlers.ListCategories)
				r.Post("/", handlers.CreateCategory)
				r.Get("/{id}", handlers.GetCategory)
				r.Patch("/{id}", handlers.UpdateCategory)
				r.Put("/{id}", handlers.ReplaceCategory)
				r.Delete("/{id}", handlers.DeleteCategory)
			})

			// Registered before /expenses/{id} so the literal segment wins.
			r.Get("/expenses/monthly-summary", handlers.MonthlySummary)
			r.Route("/expenses", transactionRoutes(handlers, handlers.Expenses))
			r.Route("/incomes", transactionRoutes(handlers, handlers.Incomes))

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", handlers.ListBudgets)
				r.Post("/", handlers.CreateBudget)
				r.Get("/{id}", handlers.GetBudget)
				r.Patch("/{id}", handlers.UpdateBudget)
				r.Put("/{id}", handlers.ReplaceBudget)
				r.Delete("/{id}", handlers.DeleteBudget)
			})
		})
	})

	return r
}

func transactionRoutes(handlers *handler.Handlers, svc *txdomain.Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", handlers.ListTransactions(svc))
		r.Post("/", handlers.CreateTransaction(svc))
		r.Get("/{id}", handlers.GetTransaction(svc))
		r.Patch("/{id}", handlers.UpdateTransaction(svc, true))
		r.Put("/{id}", handlers.UpdateTransaction(svc, false))
		r.Delete("/{id}", handlers.DeleteTransaction(svc))
	}
}

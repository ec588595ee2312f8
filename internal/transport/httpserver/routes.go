package httpserver

import (
	"net/http"
	"time"

	"finledger-go/internal/config"
	"finledger-go/internal/transport/httpserver/handler"
	authmw "finledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))

			r.Post("/auth/register", handlers.Register)
			r.Post("/auth/login", handlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			// No request timeout here: the event stream stays open
			// until the client disconnects.
			if cfg.Stream.Enabled {
				r.Get("/events", handlers.Events)
			}

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(30 * time.Second))

				r.Get("/auth/me", handlers.AuthMe)

				r.Get("/accounts", handlers.ListAccounts)
				r.Post("/accounts", handlers.CreateAccount)
				r.Patch("/accounts/{id}", handlers.UpdateAccount)
				r.Get("/accounts/net-worth", handlers.NetWorth)

				r.Get("/transactions", handlers.ListTransactions)
				r.Post("/transactions", handlers.CreateTransaction)
				r.Put("/transactions/{id}", handlers.UpdateTransaction)
				r.Delete("/transactions/{id}", handlers.DeleteTransaction)

				r.Get("/budgets", handlers.ListBudgets)
				r.Post("/budgets", handlers.CreateBudget)
				r.Patch("/budgets/{id}", handlers.UpdateBudget)
				r.Delete("/budgets/{id}", handlers.DeleteBudget)
			})
		})
	})

	return r
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	mw "finledger/internal/middleware"
)

// RouterConfig holds the router-level knobs taken from the process config.
type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// NewRouter builds the full middleware chain and route table. Registration
// and login stay outside the auth group; everything else requires a bearer
// token.
func NewRouter(h *Handler, verifier mw.TokenVerifier, users mw.UserLookup, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(mw.RateLimiter(mw.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
	}

	// Public surface: liveness, registration, login.
	r.Get("/health", h.Health)
	r.Post("/auth/login", h.Login)
	r.Post("/users", h.CreateUser)

	// Everything else requires a verified bearer token.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(verifier, users, logger))

		r.Get("/auth/me", h.Me)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Get("/users/{id}/profile", h.GetUserProfile)
		r.Delete("/users/{id}", h.DeleteUser)

		r.Post("/accounts", h.CreateAccount)
		r.Get("/accounts", h.ListAccounts)
		r.Get("/accounts/{id}", h.GetAccount)
		r.Put("/accounts/{id}", h.UpdateAccount)
		r.Delete("/accounts/{id}", h.DeleteAccount)
		r.Get("/accounts/{id}/transactions", h.ListAccountTransactions)

		r.Post("/categories", h.CreateCategory)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{id}", h.GetCategory)
		r.Put("/categories/{id}", h.UpdateCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)

		r.Post("/transactions", h.CreateTransaction)
		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/{id}", h.GetTransaction)
		r.Delete("/transactions/{id}", h.DeleteTransaction)
	})

	return r
}

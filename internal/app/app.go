// Package app wires configuration, storage, services, and the HTTP layer
// into a runnable application.
package app

import (
	"database/sql"
	"log/slog"
	"net/http"

	"finledger/internal/api"
	"finledger/internal/auth"
	"finledger/internal/config"
	"finledger/internal/db/repository"
	"finledger/internal/service"
)

// App holds the fully wired application.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Auth         *auth.Service
	Users        *service.UserService
	Accounts     *service.AccountService
	Categories   *service.CategoryService
	Transactions *service.TransactionService

	Router http.Handler
}

// New wires the application from an open database pair. It does not run
// migrations; the caller does that before wiring.
func New(cfg *config.Config, writeDB, readDB *sql.DB, logger *slog.Logger) *App {
	userRepo := repository.NewUserRepo(writeDB, readDB)
	accountRepo := repository.NewAccountRepo(writeDB, readDB)
	categoryRepo := repository.NewCategoryRepo(writeDB, readDB)
	transactionRepo := repository.NewTransactionRepo(writeDB, readDB)

	hasher := auth.NewArgon2Hasher()
	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTLifetime, nil)
	authSvc := auth.NewService(userRepo, hasher, tokens, logger)

	userSvc := service.NewUserService(userRepo, accountRepo, categoryRepo, transactionRepo, hasher)
	accountSvc := service.NewAccountService(accountRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	transactionSvc := service.NewTransactionService(transactionRepo, nil)

	handler := api.NewHandler(authSvc, userSvc, accountSvc, categorySvc, transactionSvc, logger)
	router := api.NewRouter(handler, tokens, userRepo, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Auth:         authSvc,
		Users:        userSvc,
		Accounts:     accountSvc,
		Categories:   categorySvc,
		Transactions: transactionSvc,
		Router:       router,
	}
}

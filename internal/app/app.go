package app

import (
	"net/http"

	"finledger-go/internal/config"
	"finledger-go/internal/db"
	budgetsdomain "finledger-go/internal/domain/budgets"
	identitydomain "finledger-go/internal/domain/identity"
	ledgerdomain "finledger-go/internal/domain/ledger"
	"finledger-go/internal/domain/stream"
	budgetsrepo "finledger-go/internal/repository/postgres/budgets"
	identityrepo "finledger-go/internal/repository/postgres/identity"
	ledgerrepo "finledger-go/internal/repository/postgres/ledger"
	"finledger-go/internal/transport/httpserver"
	"finledger-go/internal/transport/httpserver/handler"
	authmw "finledger-go/internal/transport/httpserver/middleware"
	"finledger-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	hub        *stream.Hub
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	hub := stream.NewHub(cfg.Stream.BufferSize)

	identityService := identitydomain.NewService(identityrepo.NewPostgres(dbConn), cfg.Auth)
	ledgerService := ledgerdomain.NewService(ledgerrepo.NewPostgres(dbConn, cfg.Ledger.AtomicAttempts), hub)
	budgetsService := budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn), hub)

	handlers := handler.New(identityService, ledgerService, budgetsService, hub, log)
	auth := authmw.NewAuth(identityService)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, auth)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
		hub:        hub,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	a.hub.Close()

	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

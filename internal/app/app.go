package app

import (
	"net/http"

	"finance-tracker/internal/config"
	"finance-tracker/internal/db"
	budgetsdomain "finance-tracker/internal/domain/budgets"
	categoriesdomain "finance-tracker/internal/domain/categories"
	summarydomain "finance-tracker/internal/domain/summary"
	txdomain "finance-tracker/internal/domain/transactions"
	userdomain "finance-tracker/internal/domain/user"
	"finance-tracker/internal/repository/inmemory"
	budgetsrepo "finance-tracker/internal/repository/postgres/budgets"
	categoriesrepo "finance-tracker/internal/repository/postgres/categories"
	summaryrepo "finance-tracker/internal/repository/postgres/summary"
	txrepo "finance-tracker/internal/repository/postgres/transactions"
	userrepo "finance-tracker/internal/repository/postgres/user"
	"finance-tracker/internal/transport/httpserver"
	"finance-tracker/internal/transport/httpserver/handler"
	"finance-tracker/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, cfg.DB, log); err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router := NewHandler(cfg, dbConn, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewHandler wires repositories, services and handlers over an open database.
func NewHandler(cfg config.Config, dbConn *gorm.DB, log logger.Logger) http.Handler {
	var categoriesCache categoriesdomain.ListCache
	if cfg.CategoriesCacheTTL > 0 {
		categoriesCache = inmemory.NewCategoriesCache()
	}
	categoriesService := categoriesdomain.NewServiceWithCache(categoriesrepo.NewPostgres(dbConn), categoriesCache, cfg.CategoriesCacheTTL)
	expensesService := txdomain.NewService(txdomain.KindExpense, txrepo.NewPostgres(dbConn, txdomain.KindExpense))
	incomesService := txdomain.NewService(txdomain.KindIncome, txrepo.NewPostgres(dbConn, txdomain.KindIncome))
	budgetsService := budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn))
	summaryService := summarydomain.NewService(summaryrepo.NewPostgres(dbConn))
	usersService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(
		categoriesService,
		expensesService,
		incomesService,
		budgetsService,
		summaryService,
		log,
	)

	return httpserver.NewRouter(cfg, handlers, usersService, log)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

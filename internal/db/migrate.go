package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"finance-tracker/internal/config"
	"finance-tracker/internal/domain/budgets"
	"finance-tracker/internal/domain/categories"
	"finance-tracker/internal/domain/transactions"
	"finance-tracker/internal/domain/user"
	"finance-tracker/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. PostgreSQL runs the embedded SQL
// migrations over a connection borrowed from gormDB, so they always target the
// database the app is connected to; SQLite is derived from the models.
func Migrate(gormDB *gorm.DB, cfg config.DBConfig, log logger.Logger) error {
	if cfg.Driver == config.DriverSQLite {
		return AutoMigrate(gormDB)
	}

	ctx := context.Background()
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("borrow migration conn: %w", err)
	}

	// Closing a driver built WithConnection releases conn but leaves the pool open.
	driver, err := migratepostgres.WithConnection(ctx, conn, &migratepostgres.Config{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	log.Info("db: migrations applied", "version", version, "dirty", dirty)
	return nil
}

// AutoMigrate creates the schema from the gorm models.
func AutoMigrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(&user.User{}, &categories.Category{}, &budgets.Budget{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, kind := range []transactions.Kind{transactions.KindExpense, transactions.KindIncome} {
		if err := gormDB.Table(kind.Table()).AutoMigrate(&transactions.Transaction{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", kind.Table(), err)
		}
	}
	return nil
}

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finance-tracker/internal/config"
	"finance-tracker/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite opens a local database for development and tests. A path starting
// with "file:" is passed through unchanged, which allows in-memory databases.
func NewSQLite(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	log.Info("db: opening sqlite", "path", path)
	gormDB, err := gorm.Open(sqlite.Open(path), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := tunePool(gormDB, cfg); err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			log.Warn("db: sqlite pragma failed", "pragma", pragma, "err", err)
		}
	}

	log.Info("db: connected", "driver", config.DriverSQLite)
	return gormDB, nil
}

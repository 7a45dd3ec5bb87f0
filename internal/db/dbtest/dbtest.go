// Package dbtest provides throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"finance-tracker/internal/config"
	"finance-tracker/internal/db"
	"finance-tracker/pkg/logger"
	"gorm.io/gorm"
)

var counter atomic.Int64

// Open returns a migrated database that is closed when t finishes. A single
// connection keeps the shared-cache database alive and serializes writers.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, counter.Add(1)),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	gormDB, err := db.NewSQLite(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

// Seed inserts rows directly, bypassing services.
func Seed(t testing.TB, gormDB *gorm.DB, table string, rows ...interface{}) {
	t.Helper()
	for _, row := range rows {
		q := gormDB
		if table != "" {
			q = q.Table(table)
		}
		if err := q.Create(row).Error; err != nil {
			t.Fatalf("seed %s: %v", table, err)
		}
	}
}

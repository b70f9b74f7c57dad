package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// memoryDSN keeps the session tables in process memory only. The store is
// not configurable: nothing outlives the process except an exported backup.
const memoryDSN = ":memory:"

// NewConnection opens a fresh session database using GORM over in-memory
// SQLite.
func NewConnection(log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(memoryDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access session store pool: %w", err)
	}
	// Every new connection to ":memory:" is a fresh, empty database, so the
	// pool is pinned to a single connection that is never recycled.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if log != nil {
		log.Info("session store opened", zap.String("dsn", memoryDSN))
	}
	return db, nil
}

// Package store persists parsed rhyme dictionaries and cipai templates so
// a host does not re-parse its source files on every start. It is a
// cache in front of internal/sourcedata, not a system of record.
package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps a *gorm.DB connection to the on-disk cache.
type DB struct {
	*gorm.DB
}

// Open opens (creating if necessary) the SQLite-backed cache at path and
// applies the connection pool limits a caller read from config.
func Open(path string, maxOpenConns, maxIdleConns int) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("store: failed to access underlying connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)

	return &DB{gormDB}, nil
}

// NewDBFromGorm wraps an already-open *gorm.DB, used by tests to attach
// an in-memory database.
func NewDBFromGorm(gormDB *gorm.DB) *DB {
	return &DB{gormDB}
}

// Migrate creates or updates the cache schema.
func (db *DB) Migrate() error {
	return db.AutoMigrate(&RhymeRecordRow{}, &TemplateRow{})
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

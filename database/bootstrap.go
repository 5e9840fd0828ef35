package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"olivia/entities"
	"olivia/pkg/logging"
)

// Open opens (or creates) the sqlite file at path and migrates every table.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		// writers wait for the lock instead of failing with SQLITE_BUSY
		dsn += "?_pragma=busy_timeout(5000)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.ClothingItem{},
		&entities.Outfit{},
		&entities.OutfitUsageEvent{},
		&entities.UserProfile{},
		&entities.ChatUsage{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	// run AFTER AutoMigrate: the table must exist
	if err := ensureUsageWindowIndex(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// OpenSQLite is Open for main: any failure is fatal.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", path).Msg("database")
	}
	return db
}

const usageWindowIndex = "idx_usage_created_action"

// ensureUsageWindowIndex adds the composite index the trending window query
// scans on. gorm tags only give us single-column indexes here.
func ensureUsageWindowIndex(db *gorm.DB) error {
	var name string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, usageWindowIndex).
		Scan(&name).Error; err != nil {
		return fmt.Errorf("check index exist: %w", err)
	}
	if name != "" {
		return nil
	}
	sql := fmt.Sprintf(`CREATE INDEX %s ON outfit_usage_events (created_at, action_type)`, usageWindowIndex)
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("create %s: %w", usageWindowIndex, err)
	}
	logging.Info().Str("index", usageWindowIndex).Msg("created index")
	return nil
}

// Ping checks the underlying connection.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

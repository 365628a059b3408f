package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stagetribe/stagetribe/internal/config"
)

// OpenUsers connects to the users database using the configured adapter
func OpenUsers(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger(cfg.Debug)}

	switch cfg.Adapter {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to users database: %w", err)
		}
		return db, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.UsersDBPath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open users database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database adapter: %s", cfg.Adapter)
	}
}

// OpenLevels opens the level data store. Level payloads always live in
// their own sqlite file, independent of the users database adapter.
func OpenLevels(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.LevelsDBPath), &gorm.Config{Logger: gormLogger(cfg.Debug)})
	if err != nil {
		return nil, fmt.Errorf("failed to open levels database: %w", err)
	}
	return db, nil
}

func gormLogger(debug bool) logger.Interface {
	if debug {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Silent)
}

package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

// DatabaseConfig selects and configures the persistence backend. SQLite is
// the default so interview progress survives a restart without any
// external service.
type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	PostgresDSN string
}

// OpenDatabase connects to the configured database and migrates the
// candidate schema.
func OpenDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

package database

import (
	"fmt"

	"rosterhub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection.
func Connect(dsn string, verbose bool) (*gorm.DB, error) {
	logMode := logger.Warn
	if verbose {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Team{},
		&models.Profile{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

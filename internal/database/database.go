package database

import (
	"fmt"
	"log"

	"github.com/daleplay/playlist-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection pool via GORM.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected")
	return db, nil
}

// Migrate runs auto-migrations for all persistent models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CatalogTrack{},
		&models.GeneratedPlaylist{},
		&models.TrackExposure{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations complete")
	return nil
}

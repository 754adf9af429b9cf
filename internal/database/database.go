package database

import (
	"log"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.EventCategory{},
		&models.Event{},
		&models.Booking{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

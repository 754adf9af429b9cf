package models

import (
	"gorm.io/gorm"
)

type EventCategory struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex"`
	Description string
	ImageURL    string
}

package models

import (
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactPending ContactStatus = "pending"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

type ContactMessage struct {
	gorm.Model
	Name    string
	Email   string
	Subject string
	Message string
	Status  ContactStatus `gorm:"type:varchar(10);default:'pending'"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	gorm.Model
	Name                 string
	Email                string `gorm:"uniqueIndex"`
	Password             string // bcrypt hash, never returned to clients
	Role                 Role   `gorm:"type:varchar(10);default:'user'"`
	Phone                string
	Address              string
	ResetPasswordToken   string `gorm:"index"`
	ResetPasswordExpires *time.Time
}

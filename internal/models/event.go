package models

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventTypeTicket   EventType = "ticket"
	EventTypePlanning EventType = "planning"
)

// PlanningDetails describes a planning-service event package. Required
// (and only meaningful) when the owning event's type is "planning".
type PlanningDetails struct {
	GuestCount     int
	Duration       string
	Services       []string `gorm:"serializer:json"`
	Inclusions     []string `gorm:"serializer:json"`
	Customizations []string `gorm:"serializer:json"`
}

type Event struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex"`
	Description string
	Location    string
	Date        time.Time
	Price       float64
	ImageURL    string
	CategoryID  uint
	Category    EventCategory `gorm:"foreignKey:CategoryID"`
	EventType   EventType     `gorm:"type:varchar(10);default:'ticket'"`

	// Ticket-type events only.
	AvailableTickets int

	PlanningDetails PlanningDetails `gorm:"embedded;embeddedPrefix:planning_"`

	Features       []string `gorm:"serializer:json"`
	Organizer      string
	ContactEmail   string
	Benefits       []string `gorm:"serializer:json"`
	TargetAudience string
	Expectations   string
}

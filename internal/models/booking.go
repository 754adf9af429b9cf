package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentCompleted   PaymentStatus = "completed"
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentRefunded    PaymentStatus = "refunded"
)

type Booking struct {
	gorm.Model
	UserID          uint
	User            User `gorm:"foreignKey:UserID"`
	EventID         uint
	Event           Event `gorm:"foreignKey:EventID"`
	StartDate       time.Time
	EndDate         time.Time
	NumberOfTickets int
	// Price snapshot taken at booking time; never recomputed from the event.
	TotalPrice      float64
	SpecialRequests string
	Status          BookingStatus `gorm:"type:varchar(10);default:'pending'"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(12);default:'pending'"`
}

// CanTransition reports whether a booking status change is legal:
// pending may become confirmed or cancelled, confirmed may become
// cancelled, and nothing leaves cancelled.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	}
	return false
}

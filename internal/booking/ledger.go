package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/payment"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidQuantity     = errors.New("ticket quantity must be at least 1")
	ErrInsufficientTickets = errors.New("not enough available tickets")
	ErrInvalidTransition   = errors.New("illegal booking status transition")
	ErrNotOwner            = errors.New("not authorized for this booking")
	ErrRefundFailed        = errors.New("refund failed")
)

// Ledger owns the booking lifecycle. Every mutation runs inside a
// database transaction so the booking row and the event's ticket
// inventory never drift apart, and the inventory itself only moves
// through conditional UPDATEs that cannot oversubscribe an event.
type Ledger struct {
	db       *gorm.DB
	payments payment.Processor
}

func NewLedger(db *gorm.DB, payments payment.Processor) *Ledger {
	return &Ledger{db: db, payments: payments}
}

type CreateParams struct {
	EventID         uint
	StartDate       time.Time
	EndDate         time.Time
	NumberOfTickets int
	SpecialRequests string
}

func (l *Ledger) Create(ctx context.Context, user *models.User, params CreateParams) (*models.Booking, error) {
	// Guard here, not just at the HTTP boundary: a quantity below 1
	// would pass the conditional decrement and inflate inventory.
	if params.NumberOfTickets < 1 {
		return nil, ErrInvalidQuantity
	}

	var booking models.Booking

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, params.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		paymentStatus := models.PaymentNotRequired
		if event.EventType == models.EventTypeTicket {
			// Conditional decrement: succeeds only while enough tickets
			// remain, so two concurrent bookings cannot both take the
			// last seats.
			res := tx.Model(&models.Event{}).
				Where("id = ? AND available_tickets >= ?", event.ID, params.NumberOfTickets).
				UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", params.NumberOfTickets))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientTickets
			}
			paymentStatus = models.PaymentPending
		}

		booking = models.Booking{
			UserID:          user.ID,
			EventID:         event.ID,
			StartDate:       params.StartDate,
			EndDate:         params.EndDate,
			NumberOfTickets: params.NumberOfTickets,
			TotalPrice:      event.Price * float64(params.NumberOfTickets),
			SpecialRequests: params.SpecialRequests,
			Status:          models.BookingPending,
			PaymentStatus:   paymentStatus,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListAll returns every booking with its user and event preloaded.
// Admin console view.
func (l *Ledger) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := l.db.WithContext(ctx).
		Preload("User").Preload("Event").
		Order("id ASC").
		Find(&bookings).Error
	return bookings, err
}

func (l *Ledger) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := l.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&bookings).Error
	return bookings, err
}

// Get returns a single booking if the actor owns it or is an admin.
func (l *Ledger) Get(ctx context.Context, id uint, actor *models.User) (*models.Booking, error) {
	var booking models.Booking
	err := l.db.WithContext(ctx).
		Preload("User").Preload("Event").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, ErrNotOwner
	}
	return &booking, nil
}

// UpdateStatus applies an admin-driven status change, enforcing the
// transition table. Cancelling restores ticket inventory and, when the
// booking was paid, requires a successful refund first; a failed refund
// rolls everything back and leaves the booking untouched.
func (l *Ledger) UpdateStatus(ctx context.Context, id uint, next models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Event").First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !models.CanTransition(booking.Status, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		if next == models.BookingCancelled {
			if booking.PaymentStatus == models.PaymentCompleted {
				if err := l.payments.Refund(ctx, booking.ID, booking.TotalPrice); err != nil {
					return fmt.Errorf("%w: %v", ErrRefundFailed, err)
				}
				booking.PaymentStatus = models.PaymentRefunded
			}
			if err := restoreTickets(tx, &booking); err != nil {
				return err
			}
		}

		booking.Status = next
		// Column-scoped update so the preloaded event association is
		// not written back with its pre-restore ticket count.
		return tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":         booking.Status,
				"payment_status": booking.PaymentStatus,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel removes a booking on behalf of its owner or an admin, putting
// its tickets back on the event. An admin cancelling a paid booking
// triggers a refund; if the refund fails the booking stays in place.
func (l *Ledger) Cancel(ctx context.Context, id uint, actor *models.User) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Event").First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.UserID != actor.ID && actor.Role != models.RoleAdmin {
			return ErrNotOwner
		}

		if actor.Role == models.RoleAdmin && booking.PaymentStatus == models.PaymentCompleted {
			if err := l.payments.Refund(ctx, booking.ID, booking.TotalPrice); err != nil {
				return fmt.Errorf("%w: %v", ErrRefundFailed, err)
			}
		}

		// A booking already in cancelled state had its tickets restored
		// when it got there; restoring again would inflate inventory.
		if booking.Status != models.BookingCancelled {
			if err := restoreTickets(tx, &booking); err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&booking).Error
	})
}

func restoreTickets(tx *gorm.DB, booking *models.Booking) error {
	if booking.Event.EventType != models.EventTypeTicket {
		return nil
	}
	return tx.Model(&models.Event{}).
		Where("id = ?", booking.EventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets + ?", booking.NumberOfTickets)).
		Error
}

package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/booking"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent    []string
	lastURL string
	err     error
}

func (m *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.lastURL = resetURL
	return nil
}

type fakeProcessor struct {
	err   error
	calls int
}

func (p *fakeProcessor) Refund(ctx context.Context, bookingID uint, amount float64) error {
	p.calls++
	return p.err
}

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	authH    *auth.AuthHandler
	mailer   *fakeMailer
	payments *fakeProcessor

	account    *AccountHandler
	categories *CategoryHandler
	events     *EventHandler
	bookings   *BookingHandler
	contact    *ContactHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.EventCategory{},
		&models.Event{},
		&models.Booking{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret", FrontendURL: "http://frontend.test"}
	authH := auth.NewAuthHandler(cfg, db)
	mailer := &fakeMailer{}
	payments := &fakeProcessor{}
	ledger := booking.NewLedger(db, payments)

	return &testEnv{
		db:         db,
		cfg:        cfg,
		authH:      authH,
		mailer:     mailer,
		payments:   payments,
		account:    NewAccountHandler(db, cfg, authH, mailer),
		categories: NewCategoryHandler(db, authH),
		events:     NewEventHandler(db, authH),
		bookings:   NewBookingHandler(ledger, authH),
		contact:    NewContactHandler(db, authH),
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := e.authH.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, "Bearer " + token
}

func (e *testEnv) createCategory(t *testing.T, name string) *models.EventCategory {
	t.Helper()
	category := &models.EventCategory{Name: name}
	if err := e.db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

func (e *testEnv) createTicketEvent(t *testing.T, name string, categoryID uint, price float64, tickets int) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:             name,
		Description:      "test event",
		Location:         "Hyderabad",
		Date:             time.Now().Add(30 * 24 * time.Hour),
		Price:            price,
		CategoryID:       categoryID,
		EventType:        models.EventTypeTicket,
		AvailableTickets: tickets,
	}
	if err := e.db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected a status error, got %T: %v", err, err)
	}
	return se.GetStatus()
}

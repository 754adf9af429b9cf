package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/booking"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/database"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/handlers"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/notifier"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/payment"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// External collaborators
	mailer := notifier.NewSMTPMailer(cfg)
	payments := payment.NewClient(cfg)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	ledger := booking.NewLedger(db, payments)

	accountHandler := handlers.NewAccountHandler(db, cfg, authHandler, mailer)
	categoryHandler := handlers.NewCategoryHandler(db, authHandler)
	eventHandler := handlers.NewEventHandler(db, authHandler)
	bookingHandler := handlers.NewBookingHandler(ledger, authHandler)
	contactHandler := handlers.NewContactHandler(db, authHandler)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, accountHandler, categoryHandler, eventHandler, bookingHandler, contactHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

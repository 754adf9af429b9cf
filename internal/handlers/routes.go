package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

func RegisterRoutes(r *chi.Mux, account *AccountHandler, categories *CategoryHandler, events *EventHandler, bookings *BookingHandler, contact *ContactHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Event Ease API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	huma.Post(api, "/auth/register", account.HandleRegister, created)
	huma.Post(api, "/auth/login", account.HandleLogin)
	huma.Get(api, "/auth/me", account.HandleMe, secured)
	huma.Put(api, "/auth/profile", account.HandleUpdateProfile, secured)
	huma.Post(api, "/auth/forgot-password", account.HandleForgotPassword)
	huma.Post(api, "/auth/reset-password/{token}", account.HandleResetPassword)

	// Catalog routes
	huma.Get(api, "/eventCategories", categories.HandleList)
	huma.Get(api, "/eventCategories/{id}", categories.HandleGet)
	huma.Post(api, "/eventCategories", categories.HandleCreate, created, secured)
	huma.Put(api, "/eventCategories/{id}", categories.HandleUpdate, secured)
	huma.Delete(api, "/eventCategories/{id}", categories.HandleDelete, secured)

	huma.Get(api, "/events", events.HandleList)
	huma.Get(api, "/events/search", events.HandleSearch)
	huma.Get(api, "/events/{id}", events.HandleGet)
	huma.Post(api, "/events", events.HandleCreate, created, secured)
	huma.Put(api, "/events/{id}", events.HandleUpdate, secured)
	huma.Delete(api, "/events/{id}", events.HandleDelete, secured)

	// Booking routes
	huma.Get(api, "/bookings", bookings.HandleListAll, secured)
	huma.Get(api, "/bookings/my-bookings", bookings.HandleListMine, secured)
	huma.Get(api, "/bookings/{id}", bookings.HandleGet, secured)
	huma.Post(api, "/bookings", bookings.HandleCreate, created, secured)
	huma.Patch(api, "/bookings/{id}/status", bookings.HandleUpdateStatus, secured)
	huma.Delete(api, "/bookings/{id}", bookings.HandleCancel, secured)

	// Contact routes
	huma.Post(api, "/contact", contact.HandleSubmit, created)
	huma.Get(api, "/contact", contact.HandleList, secured)
	huma.Get(api, "/contact/{id}", contact.HandleGet, secured)
	huma.Patch(api, "/contact/{id}", contact.HandleUpdateStatus, secured)
	huma.Delete(api, "/contact/{id}", contact.HandleDelete, secured)
}

package handlers

import (
	"context"
	"testing"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
)

// Full catalog-to-cancellation scenario: admin builds the catalog, a
// user books three tickets, inventory and price snapshot follow, and
// cancellation puts everything back.
func TestBookingScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, adminToken := env.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	_, userToken := env.createUser(t, "Asha", "asha@example.com", models.RoleUser)

	createCat := &CreateCategoryInput{}
	createCat.Authorization = adminToken
	createCat.Body.Name = "Weddings"
	cat, err := env.categories.HandleCreate(ctx, createCat)
	if err != nil {
		t.Fatalf("category create returned error: %v", err)
	}

	createEvent := &CreateEventInput{Body: ticketPayload("Grand Wedding Fair", cat.Body.ID, 500, 10)}
	createEvent.Authorization = adminToken
	event, err := env.events.HandleCreate(ctx, createEvent)
	if err != nil {
		t.Fatalf("event create returned error: %v", err)
	}

	book := &CreateBookingInput{}
	book.Authorization = userToken
	book.Body.EventID = event.Body.ID
	book.Body.NumberOfTickets = 3
	booked, err := env.bookings.HandleCreate(ctx, book)
	if err != nil {
		t.Fatalf("booking create returned error: %v", err)
	}
	if booked.Body.TotalPrice != 1500 {
		t.Errorf("expected total price 1500, got %v", booked.Body.TotalPrice)
	}

	got, err := env.events.HandleGet(ctx, &GetEventInput{ID: event.Body.ID})
	if err != nil {
		t.Fatalf("event get returned error: %v", err)
	}
	if got.Body.AvailableTickets != 7 {
		t.Errorf("expected 7 tickets left, got %d", got.Body.AvailableTickets)
	}

	cancel := &CancelBookingInput{ID: booked.Body.ID}
	cancel.Authorization = userToken
	if _, err := env.bookings.HandleCancel(ctx, cancel); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}

	got, err = env.events.HandleGet(ctx, &GetEventInput{ID: event.Body.ID})
	if err != nil {
		t.Fatalf("event get returned error: %v", err)
	}
	if got.Body.AvailableTickets != 10 {
		t.Errorf("expected tickets restored to 10, got %d", got.Body.AvailableTickets)
	}

	mine := &ListBookingsInput{}
	mine.Authorization = userToken
	listed, err := env.bookings.HandleListMine(ctx, mine)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listed.Body) != 0 {
		t.Errorf("expected no bookings after cancel, got %d", len(listed.Body))
	}
}

func TestBookingVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, adminToken := env.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	asha, ashaToken := env.createUser(t, "Asha", "asha@example.com", models.RoleUser)
	_, raviToken := env.createUser(t, "Ravi", "ravi@example.com", models.RoleUser)
	category := env.createCategory(t, "Concerts")
	event := env.createTicketEvent(t, "Rock Night", category.ID, 900, 100)

	book := &CreateBookingInput{}
	book.Authorization = ashaToken
	book.Body.EventID = event.ID
	book.Body.NumberOfTickets = 2
	booked, err := env.bookings.HandleCreate(ctx, book)
	if err != nil {
		t.Fatalf("booking create returned error: %v", err)
	}

	t.Run("AdminSeesAll", func(t *testing.T) {
		list := &ListBookingsInput{}
		list.Authorization = adminToken
		resp, err := env.bookings.HandleListAll(ctx, list)
		if err != nil {
			t.Fatalf("HandleListAll returned error: %v", err)
		}
		if len(resp.Body) != 1 || resp.Body[0].UserID != asha.ID {
			t.Errorf("unexpected bookings %+v", resp.Body)
		}
	})

	t.Run("UserCannotListAll", func(t *testing.T) {
		list := &ListBookingsInput{}
		list.Authorization = ashaToken
		_, err := env.bookings.HandleListAll(ctx, list)
		if got := statusOf(t, err); got != 403 {
			t.Errorf("expected 403, got %d", got)
		}
	})

	t.Run("OtherUserSeesNothing", func(t *testing.T) {
		list := &ListBookingsInput{}
		list.Authorization = raviToken
		resp, err := env.bookings.HandleListMine(ctx, list)
		if err != nil {
			t.Fatalf("HandleListMine returned error: %v", err)
		}
		if len(resp.Body) != 0 {
			t.Errorf("expected empty list, got %+v", resp.Body)
		}
	})

	t.Run("GetOwnerOrAdminOnly", func(t *testing.T) {
		get := &GetBookingInput{ID: booked.Body.ID}
		get.Authorization = raviToken
		_, err := env.bookings.HandleGet(ctx, get)
		if got := statusOf(t, err); got != 403 {
			t.Errorf("expected 403 for stranger, got %d", got)
		}

		get.Authorization = adminToken
		if _, err := env.bookings.HandleGet(ctx, get); err != nil {
			t.Errorf("admin get returned error: %v", err)
		}
	})

	t.Run("StrangerCannotCancel", func(t *testing.T) {
		cancel := &CancelBookingInput{ID: booked.Body.ID}
		cancel.Authorization = raviToken
		_, err := env.bookings.HandleCancel(ctx, cancel)
		if got := statusOf(t, err); got != 403 {
			t.Errorf("expected 403, got %d", got)
		}
	})
}

func TestBookingStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, adminToken := env.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	_, userToken := env.createUser(t, "Asha", "asha@example.com", models.RoleUser)
	category := env.createCategory(t, "Concerts")
	event := env.createTicketEvent(t, "Rock Night", category.ID, 900, 100)

	book := &CreateBookingInput{}
	book.Authorization = userToken
	book.Body.EventID = event.ID
	book.Body.NumberOfTickets = 1
	booked, err := env.bookings.HandleCreate(ctx, book)
	if err != nil {
		t.Fatalf("booking create returned error: %v", err)
	}

	patch := &UpdateBookingStatusInput{ID: booked.Body.ID}
	patch.Body.Status = models.BookingConfirmed

	patch.Authorization = userToken
	_, err = env.bookings.HandleUpdateStatus(ctx, patch)
	if got := statusOf(t, err); got != 403 {
		t.Errorf("expected 403 for non-admin status change, got %d", got)
	}

	patch.Authorization = adminToken
	resp, err := env.bookings.HandleUpdateStatus(ctx, patch)
	if err != nil {
		t.Fatalf("HandleUpdateStatus returned error: %v", err)
	}
	if resp.Body.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed, got %s", resp.Body.Status)
	}

	// confirmed -> pending is not in the transition table
	patch.Body.Status = models.BookingPending
	_, err = env.bookings.HandleUpdateStatus(ctx, patch)
	if got := statusOf(t, err); got != 409 {
		t.Errorf("expected 409 for illegal transition, got %d", got)
	}
}

func TestBookingInsufficientTickets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, userToken := env.createUser(t, "Asha", "asha@example.com", models.RoleUser)
	category := env.createCategory(t, "Concerts")
	event := env.createTicketEvent(t, "Tiny Show", category.ID, 100, 3)

	book := &CreateBookingInput{}
	book.Authorization = userToken
	book.Body.EventID = event.ID
	book.Body.NumberOfTickets = 4
	_, err := env.bookings.HandleCreate(ctx, book)
	if got := statusOf(t, err); got != 400 {
		t.Errorf("expected 400 for oversubscription, got %d", got)
	}

	var stored models.Event
	env.db.First(&stored, event.ID)
	if stored.AvailableTickets != 3 {
		t.Errorf("expected inventory untouched, got %d", stored.AvailableTickets)
	}
}

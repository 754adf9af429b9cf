package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewEventHandler(db *gorm.DB, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{db: db, authHandler: authHandler}
}

type PlanningDetailsPayload struct {
	GuestCount     int      `json:"guestCount" minimum:"0"`
	Duration       string   `json:"duration"`
	Services       []string `json:"services,omitempty"`
	Inclusions     []string `json:"inclusions,omitempty"`
	Customizations []string `json:"customizations,omitempty"`
}

type EventResponse struct {
	ID               uint                    `json:"id"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Location         string                  `json:"location"`
	Date             time.Time               `json:"date"`
	Price            float64                 `json:"price"`
	ImageURL         string                  `json:"imageUrl"`
	Category         CategoryResponse        `json:"category"`
	EventType        models.EventType        `json:"eventType"`
	AvailableTickets int                     `json:"availableTickets"`
	PlanningDetails  *PlanningDetailsPayload `json:"planningDetails,omitempty"`
	Features         []string                `json:"features,omitempty"`
	Organizer        string                  `json:"organizer,omitempty"`
	ContactEmail     string                  `json:"contactEmail,omitempty"`
	Benefits         []string                `json:"benefits,omitempty"`
	TargetAudience   string                  `json:"targetAudience,omitempty"`
	Expectations     string                  `json:"expectations,omitempty"`
}

func toEventResponse(e *models.Event) EventResponse {
	res := EventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		Location:         e.Location,
		Date:             e.Date,
		Price:            e.Price,
		ImageURL:         e.ImageURL,
		Category:         toCategoryResponse(&e.Category),
		EventType:        e.EventType,
		AvailableTickets: e.AvailableTickets,
		Features:         e.Features,
		Organizer:        e.Organizer,
		ContactEmail:     e.ContactEmail,
		Benefits:         e.Benefits,
		TargetAudience:   e.TargetAudience,
		Expectations:     e.Expectations,
	}
	if e.EventType == models.EventTypePlanning {
		res.PlanningDetails = &PlanningDetailsPayload{
			GuestCount:     e.PlanningDetails.GuestCount,
			Duration:       e.PlanningDetails.Duration,
			Services:       e.PlanningDetails.Services,
			Inclusions:     e.PlanningDetails.Inclusions,
			Customizations: e.PlanningDetails.Customizations,
		}
	}
	return res
}

type ListEventsOutput struct {
	Body []EventResponse
}

func (h *EventHandler) HandleList(ctx context.Context, input *struct{}) (*ListEventsOutput, error) {
	var events []models.Event
	if err := h.db.WithContext(ctx).Preload("Category").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error fetching events")
	}

	res := &ListEventsOutput{Body: make([]EventResponse, len(events))}
	for i := range events {
		res.Body[i] = toEventResponse(&events[i])
	}
	return res, nil
}

type SearchEventsInput struct {
	Name     string `query:"name" doc:"Case-insensitive substring match on event name"`
	Location string `query:"location" doc:"Case-insensitive substring match on location"`
	Category string `query:"category" doc:"Exact category id"`
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search
// terms so they match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// HandleSearch filters the catalog. A category value that is not a
// valid id is a client error, distinct from a well-formed id that
// matches no category.
func (h *EventHandler) HandleSearch(ctx context.Context, input *SearchEventsInput) (*ListEventsOutput, error) {
	q := h.db.WithContext(ctx).Preload("Category").Model(&models.Event{})

	if input.Name != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(input.Name))+"%")
	}
	if input.Location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(input.Location))+"%")
	}
	if input.Category != "" {
		categoryID, err := strconv.ParseUint(input.Category, 10, 64)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid category ID format")
		}
		var category models.EventCategory
		if err := h.db.WithContext(ctx).First(&category, uint(categoryID)).Error; err != nil {
			return nil, huma.Error404NotFound("Category not found")
		}
		q = q.Where("category_id = ?", uint(categoryID))
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error during search")
	}

	res := &ListEventsOutput{Body: make([]EventResponse, len(events))}
	for i := range events {
		res.Body[i] = toEventResponse(&events[i])
	}
	return res, nil
}

type GetEventInput struct {
	ID uint `path:"id"`
}

type EventOutput struct {
	Body EventResponse
}

func (h *EventHandler) HandleGet(ctx context.Context, input *GetEventInput) (*EventOutput, error) {
	var event models.Event
	if err := h.db.WithContext(ctx).Preload("Category").First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}
	return &EventOutput{Body: toEventResponse(&event)}, nil
}

type EventPayload struct {
	Name             string                  `json:"name" required:"true"`
	Description      string                  `json:"description" required:"true"`
	Location         string                  `json:"location" required:"true"`
	Date             time.Time               `json:"date" required:"true"`
	Price            float64                 `json:"price" minimum:"0" required:"true"`
	ImageURL         string                  `json:"imageUrl,omitempty"`
	CategoryID       uint                    `json:"categoryId" required:"true"`
	EventType        models.EventType        `json:"eventType" enum:"ticket,planning" required:"true"`
	AvailableTickets *int                    `json:"availableTickets,omitempty" minimum:"0"`
	PlanningDetails  *PlanningDetailsPayload `json:"planningDetails,omitempty"`
	Features         []string                `json:"features,omitempty"`
	Organizer        string                  `json:"organizer,omitempty"`
	ContactEmail     string                  `json:"contactEmail,omitempty" format:"email"`
	Benefits         []string                `json:"benefits,omitempty"`
	TargetAudience   string                  `json:"targetAudience,omitempty"`
	Expectations     string                  `json:"expectations,omitempty"`
}

// applyPayload validates the type-variant invariant (exactly one of the
// ticket and planning field-sets, selected by eventType) and copies the
// payload onto the model.
func applyPayload(event *models.Event, p *EventPayload) error {
	switch p.EventType {
	case models.EventTypeTicket:
		if p.AvailableTickets == nil {
			return errors.New("availableTickets is required for ticket events")
		}
		if p.PlanningDetails != nil {
			return errors.New("planningDetails is only valid for planning events")
		}
		event.AvailableTickets = *p.AvailableTickets
		event.PlanningDetails = models.PlanningDetails{}
	case models.EventTypePlanning:
		if p.PlanningDetails == nil {
			return errors.New("planningDetails is required for planning events")
		}
		if p.PlanningDetails.Duration == "" {
			return errors.New("planningDetails.duration is required")
		}
		if p.AvailableTickets != nil {
			return errors.New("availableTickets is only valid for ticket events")
		}
		event.AvailableTickets = 0
		event.PlanningDetails = models.PlanningDetails{
			GuestCount:     p.PlanningDetails.GuestCount,
			Duration:       p.PlanningDetails.Duration,
			Services:       p.PlanningDetails.Services,
			Inclusions:     p.PlanningDetails.Inclusions,
			Customizations: p.PlanningDetails.Customizations,
		}
	default:
		return errors.New("eventType must be ticket or planning")
	}

	event.Name = p.Name
	event.Description = p.Description
	event.Location = p.Location
	event.Date = p.Date
	event.Price = p.Price
	event.ImageURL = p.ImageURL
	event.CategoryID = p.CategoryID
	event.EventType = p.EventType
	event.Features = p.Features
	event.Organizer = p.Organizer
	event.ContactEmail = p.ContactEmail
	event.Benefits = p.Benefits
	event.TargetAudience = p.TargetAudience
	event.Expectations = p.Expectations
	return nil
}

type CreateEventInput struct {
	auth.AuthInput
	Body EventPayload
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventInput) (*EventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var category models.EventCategory
	if err := h.db.WithContext(ctx).First(&category, input.Body.CategoryID).Error; err != nil {
		return nil, huma.Error404NotFound("Category not found")
	}

	var event models.Event
	if err := applyPayload(&event, &input.Body); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var existing models.Event
	err := h.db.WithContext(ctx).Where("name = ?", event.Name).First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("Event already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Server error")
	}

	if err := h.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event")
	}

	event.Category = category
	return &EventOutput{Body: toEventResponse(&event)}, nil
}

type UpdateEventInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body EventPayload
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventInput) (*EventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	var category models.EventCategory
	if err := h.db.WithContext(ctx).First(&category, input.Body.CategoryID).Error; err != nil {
		return nil, huma.Error404NotFound("Category not found")
	}

	if input.Body.Name != event.Name {
		var existing models.Event
		err := h.db.WithContext(ctx).Where("name = ?", input.Body.Name).First(&existing).Error
		if err == nil {
			return nil, huma.Error409Conflict("Event name already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error500InternalServerError("Server error")
		}
	}

	// Ticket restoration on cancel keys on the event's type, so the
	// type may not change while bookings still reference the event.
	if input.Body.EventType != event.EventType {
		var bookingCount int64
		if err := h.db.WithContext(ctx).Model(&models.Booking{}).Where("event_id = ?", event.ID).Count(&bookingCount).Error; err != nil {
			return nil, huma.Error500InternalServerError("Server error")
		}
		if bookingCount > 0 {
			return nil, huma.Error409Conflict("Event type cannot change while bookings exist")
		}
	}

	if err := applyPayload(&event, &input.Body); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update event")
	}

	event.Category = category
	return &EventOutput{Body: toEventResponse(&event)}, nil
}

type DeleteEventInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

// HandleDelete removes an event. Deletion is refused while bookings
// still reference the event, so no booking is ever left dangling.
func (h *EventHandler) HandleDelete(ctx context.Context, input *DeleteEventInput) (*MessageResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	var bookingCount int64
	if err := h.db.WithContext(ctx).Model(&models.Booking{}).Where("event_id = ?", event.ID).Count(&bookingCount).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	if bookingCount > 0 {
		return nil, huma.Error409Conflict("Event has existing bookings and cannot be deleted")
	}

	if err := h.db.WithContext(ctx).Unscoped().Delete(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete event")
	}

	res := &MessageResponse{}
	res.Body.Message = "Event removed"
	return res, nil
}

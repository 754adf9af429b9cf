package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/booking"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
)

type BookingHandler struct {
	ledger      *booking.Ledger
	authHandler *auth.AuthHandler
}

func NewBookingHandler(ledger *booking.Ledger, authHandler *auth.AuthHandler) *BookingHandler {
	return &BookingHandler{ledger: ledger, authHandler: authHandler}
}

type BookingResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"userId"`
	UserName        string               `json:"userName,omitempty"`
	EventID         uint                 `json:"eventId"`
	EventName       string               `json:"eventName,omitempty"`
	StartDate       time.Time            `json:"startDate"`
	EndDate         time.Time            `json:"endDate"`
	NumberOfTickets int                  `json:"numberOfTickets"`
	TotalPrice      float64              `json:"totalPrice"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	Status          models.BookingStatus `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	CreatedAt       time.Time            `json:"createdAt"`
}

func toBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		UserName:        b.User.Name,
		EventID:         b.EventID,
		EventName:       b.Event.Name,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		NumberOfTickets: b.NumberOfTickets,
		TotalPrice:      b.TotalPrice,
		SpecialRequests: b.SpecialRequests,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
	}
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, booking.ErrEventNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, booking.ErrInvalidQuantity):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, booking.ErrInsufficientTickets):
		return huma.Error400BadRequest("Not enough available tickets")
	case errors.Is(err, booking.ErrInvalidTransition):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, booking.ErrNotOwner):
		return huma.Error403Forbidden("Not authorized")
	case errors.Is(err, booking.ErrRefundFailed):
		return huma.Error500InternalServerError(err.Error())
	default:
		return huma.Error500InternalServerError("Server error")
	}
}

type ListBookingsInput struct {
	auth.AuthInput
}

type ListBookingsOutput struct {
	Body []BookingResponse
}

func (h *BookingHandler) HandleListAll(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	bookings, err := h.ledger.ListAll(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error fetching all bookings")
	}

	res := &ListBookingsOutput{Body: make([]BookingResponse, len(bookings))}
	for i := range bookings {
		res.Body[i] = toBookingResponse(&bookings[i])
	}
	return res, nil
}

func (h *BookingHandler) HandleListMine(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	bookings, err := h.ledger.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error fetching user bookings")
	}

	res := &ListBookingsOutput{Body: make([]BookingResponse, len(bookings))}
	for i := range bookings {
		res.Body[i] = toBookingResponse(&bookings[i])
	}
	return res, nil
}

type GetBookingInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type BookingOutput struct {
	Body BookingResponse
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *GetBookingInput) (*BookingOutput, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := h.ledger.Get(ctx, input.ID, user)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return &BookingOutput{Body: toBookingResponse(b)}, nil
}

type CreateBookingInput struct {
	auth.AuthInput
	Body struct {
		EventID         uint      `json:"eventId" required:"true"`
		StartDate       time.Time `json:"startDate" required:"true"`
		EndDate         time.Time `json:"endDate" required:"true"`
		NumberOfTickets int       `json:"numberOfTickets" minimum:"1" required:"true"`
		SpecialRequests string    `json:"specialRequests,omitempty"`
	}
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingInput) (*BookingOutput, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := h.ledger.Create(ctx, user, booking.CreateParams{
		EventID:         input.Body.EventID,
		StartDate:       input.Body.StartDate,
		EndDate:         input.Body.EndDate,
		NumberOfTickets: input.Body.NumberOfTickets,
		SpecialRequests: input.Body.SpecialRequests,
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return &BookingOutput{Body: toBookingResponse(b)}, nil
}

type UpdateBookingStatusInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status models.BookingStatus `json:"status" enum:"pending,confirmed,cancelled" required:"true"`
	}
}

func (h *BookingHandler) HandleUpdateStatus(ctx context.Context, input *UpdateBookingStatusInput) (*BookingOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	b, err := h.ledger.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return &BookingOutput{Body: toBookingResponse(b)}, nil
}

type CancelBookingInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *BookingHandler) HandleCancel(ctx context.Context, input *CancelBookingInput) (*MessageResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := h.ledger.Cancel(ctx, input.ID, user); err != nil {
		return nil, mapLedgerError(err)
	}

	res := &MessageResponse{}
	res.Body.Message = "Booking cancelled"
	return res, nil
}

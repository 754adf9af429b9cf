package handlers

import (
	"context"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ContactHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewContactHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ContactHandler {
	return &ContactHandler{db: db, authHandler: authHandler}
}

type ContactResponse struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

func toContactResponse(c *models.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

type SubmitContactInput struct {
	Body struct {
		Name    string `json:"name" minLength:"1" required:"true"`
		Email   string `json:"email" format:"email" required:"true"`
		Subject string `json:"subject" minLength:"1" required:"true"`
		Message string `json:"message" minLength:"1" required:"true"`
	}
}

type ContactOutput struct {
	Body ContactResponse
}

func (h *ContactHandler) HandleSubmit(ctx context.Context, input *SubmitContactInput) (*ContactOutput, error) {
	contact := models.ContactMessage{
		Name:    input.Body.Name,
		Email:   input.Body.Email,
		Subject: input.Body.Subject,
		Message: input.Body.Message,
		Status:  models.ContactPending,
	}
	if err := h.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	return &ContactOutput{Body: toContactResponse(&contact)}, nil
}

type ListContactsInput struct {
	auth.AuthInput
}

type ListContactsOutput struct {
	Body []ContactResponse
}

func (h *ContactHandler) HandleList(ctx context.Context, input *ListContactsInput) (*ListContactsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var contacts []models.ContactMessage
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	res := &ListContactsOutput{Body: make([]ContactResponse, len(contacts))}
	for i := range contacts {
		res.Body[i] = toContactResponse(&contacts[i])
	}
	return res, nil
}

type GetContactInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *ContactHandler) HandleGet(ctx context.Context, input *GetContactInput) (*ContactOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var contact models.ContactMessage
	if err := h.db.WithContext(ctx).First(&contact, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Message not found")
	}
	return &ContactOutput{Body: toContactResponse(&contact)}, nil
}

type UpdateContactStatusInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status models.ContactStatus `json:"status" enum:"pending,read,replied" required:"true"`
	}
}

// HandleUpdateStatus sets a message's status. Unlike bookings, contact
// statuses have no ordering; any value of the enum may be set at any
// time.
func (h *ContactHandler) HandleUpdateStatus(ctx context.Context, input *UpdateContactStatusInput) (*ContactOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var contact models.ContactMessage
	if err := h.db.WithContext(ctx).First(&contact, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Message not found")
	}

	contact.Status = input.Body.Status
	if err := h.db.WithContext(ctx).Save(&contact).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	return &ContactOutput{Body: toContactResponse(&contact)}, nil
}

type DeleteContactInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *ContactHandler) HandleDelete(ctx context.Context, input *DeleteContactInput) (*MessageResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var contact models.ContactMessage
	if err := h.db.WithContext(ctx).First(&contact, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Message not found")
	}

	if err := h.db.WithContext(ctx).Unscoped().Delete(&contact).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	res := &MessageResponse{}
	res.Body.Message = "Message deleted"
	return res, nil
}

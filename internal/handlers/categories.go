package handlers

import (
	"context"
	"errors"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCategoryHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CategoryHandler {
	return &CategoryHandler{db: db, authHandler: authHandler}
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func toCategoryResponse(c *models.EventCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

type ListCategoriesOutput struct {
	Body []CategoryResponse
}

func (h *CategoryHandler) HandleList(ctx context.Context, input *struct{}) (*ListCategoriesOutput, error) {
	var categories []models.EventCategory
	if err := h.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error fetching categories")
	}

	res := &ListCategoriesOutput{Body: make([]CategoryResponse, len(categories))}
	for i := range categories {
		res.Body[i] = toCategoryResponse(&categories[i])
	}
	return res, nil
}

type GetCategoryInput struct {
	ID uint `path:"id"`
}

type CategoryOutput struct {
	Body CategoryResponse
}

func (h *CategoryHandler) HandleGet(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	var category models.EventCategory
	if err := h.db.WithContext(ctx).First(&category, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event category not found")
	}
	return &CategoryOutput{Body: toCategoryResponse(&category)}, nil
}

type CreateCategoryInput struct {
	auth.AuthInput
	Body struct {
		Name        string `json:"name" required:"true"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
	}
}

func (h *CategoryHandler) HandleCreate(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var existing models.EventCategory
	err := h.db.WithContext(ctx).Where("name = ?", input.Body.Name).First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("Event category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Server error")
	}

	category := models.EventCategory{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		ImageURL:    input.Body.ImageURL,
	}
	if err := h.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create category")
	}

	return &CategoryOutput{Body: toCategoryResponse(&category)}, nil
}

type UpdateCategoryInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Name        string `json:"name,omitempty"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
	}
}

func (h *CategoryHandler) HandleUpdate(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var category models.EventCategory
	if err := h.db.WithContext(ctx).First(&category, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event category not found")
	}

	if input.Body.Name != "" && input.Body.Name != category.Name {
		var existing models.EventCategory
		err := h.db.WithContext(ctx).Where("name = ?", input.Body.Name).First(&existing).Error
		if err == nil {
			return nil, huma.Error409Conflict("Category name already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error500InternalServerError("Server error")
		}
		category.Name = input.Body.Name
	}
	if input.Body.Description != "" {
		category.Description = input.Body.Description
	}
	if input.Body.ImageURL != "" {
		category.ImageURL = input.Body.ImageURL
	}

	if err := h.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update category")
	}

	return &CategoryOutput{Body: toCategoryResponse(&category)}, nil
}

type DeleteCategoryInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *CategoryHandler) HandleDelete(ctx context.Context, input *DeleteCategoryInput) (*MessageResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	var category models.EventCategory
	if err := h.db.WithContext(ctx).First(&category, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event category not found")
	}

	if err := h.db.WithContext(ctx).Unscoped().Delete(&category).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete category")
	}

	res := &MessageResponse{}
	res.Body.Message = "Event category deleted successfully"
	return res, nil
}

package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/auth"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

const resetTokenValidity = time.Hour

type AccountHandler struct {
	db          *gorm.DB
	cfg         *config.Config
	authHandler *auth.AuthHandler
	mailer      notifier.Mailer
}

func NewAccountHandler(db *gorm.DB, cfg *config.Config, authHandler *auth.AuthHandler, mailer notifier.Mailer) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg, authHandler: authHandler, mailer: mailer}
}

type UserResponse struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Phone   string      `json:"phone,omitempty"`
	Address string      `json:"address,omitempty"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Phone:   u.Phone,
		Address: u.Address,
	}
}

type RegisterRequest struct {
	Body struct {
		Name     string `json:"name" doc:"Display name" required:"true"`
		Email    string `json:"email" format:"email" required:"true"`
		Password string `json:"password" minLength:"6" required:"true"`
	}
}

type CredentialResponse struct {
	Body struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
}

func (h *AccountHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*CredentialResponse, error) {
	var existing models.User
	err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Server error")
	}

	hash, err := auth.HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	user := models.User{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create user")
	}

	token, err := h.authHandler.GenerateToken(&user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &CredentialResponse{}
	res.Body.Token = token
	res.Body.User = toUserResponse(&user)
	return res, nil
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

func (h *AccountHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*CredentialResponse, error) {
	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	if !auth.CheckPassword(user.Password, input.Body.Password) {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.authHandler.GenerateToken(&user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &CredentialResponse{}
	res.Body.Token = token
	res.Body.User = toUserResponse(&user)
	return res, nil
}

type MeRequest struct {
	auth.AuthInput
}

type MeResponse struct {
	Body UserResponse
}

func (h *AccountHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &MeResponse{Body: toUserResponse(user)}, nil
}

type UpdateProfileRequest struct {
	auth.AuthInput
	Body struct {
		Name            string `json:"name,omitempty"`
		Email           string `json:"email,omitempty" format:"email"`
		Phone           string `json:"phone,omitempty"`
		Address         string `json:"address,omitempty"`
		CurrentPassword string `json:"currentPassword,omitempty"`
		NewPassword     string `json:"newPassword,omitempty" minLength:"6"`
	}
}

func (h *AccountHandler) HandleUpdateProfile(ctx context.Context, input *UpdateProfileRequest) (*MeResponse, error) {
	actor, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, actor.ID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	if input.Body.Email != "" && input.Body.Email != user.Email {
		var other models.User
		err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&other).Error
		if err == nil {
			return nil, huma.Error409Conflict("Email already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error500InternalServerError("Server error")
		}
		user.Email = input.Body.Email
	}
	if input.Body.Name != "" {
		user.Name = input.Body.Name
	}
	if input.Body.Phone != "" {
		user.Phone = input.Body.Phone
	}
	if input.Body.Address != "" {
		user.Address = input.Body.Address
	}

	if input.Body.NewPassword != "" {
		if input.Body.CurrentPassword == "" {
			return nil, huma.Error400BadRequest("Current password is required to set a new password")
		}
		if !auth.CheckPassword(user.Password, input.Body.CurrentPassword) {
			return nil, huma.Error401Unauthorized("Current password is incorrect")
		}
		hash, err := auth.HashPassword(input.Body.NewPassword)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to hash password")
		}
		user.Password = hash
	}

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update profile")
	}

	return &MeResponse{Body: toUserResponse(&user)}, nil
}

type ForgotPasswordRequest struct {
	Body struct {
		Email string `json:"email" format:"email" required:"true"`
	}
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *AccountHandler) HandleForgotPassword(ctx context.Context, input *ForgotPasswordRequest) (*MessageResponse, error) {
	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate reset token")
	}
	resetToken := hex.EncodeToString(tokenBytes)

	expires := time.Now().Add(resetTokenValidity)
	user.ResetPasswordToken = resetToken
	user.ResetPasswordExpires = &expires
	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to store reset token")
	}

	resetURL := h.cfg.FrontendURL + "/reset-password/" + resetToken
	if err := h.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		return nil, huma.Error500InternalServerError("Error sending reset link")
	}

	res := &MessageResponse{}
	res.Body.Message = "Password reset link sent to your email"
	return res, nil
}

type ResetPasswordRequest struct {
	Token string `path:"token"`
	Body  struct {
		Password string `json:"password" minLength:"6" required:"true"`
	}
}

func (h *AccountHandler) HandleResetPassword(ctx context.Context, input *ResetPasswordRequest) (*MessageResponse, error) {
	var user models.User
	err := h.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", input.Token, time.Now()).
		First(&user).Error
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid or expired reset token")
	}

	hash, err := auth.HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	user.Password = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Error resetting password")
	}

	res := &MessageResponse{}
	res.Body.Message = "Password has been reset successfully"
	return res, nil
}

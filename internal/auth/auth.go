package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenDuration applies to tokens from both register and login. The two
// flows share one expiry policy so a fresh account is not longer-lived
// than a returning session.
const TokenDuration = 24 * time.Hour

// AuthInput carries the bearer credential. Embed it in any protected
// huma request struct and pass the header to Authorize.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

func (h *AuthHandler) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize is the single authorization predicate for the whole API:
// it verifies the bearer token, resolves its subject to a user record,
// and, when roles are given, requires the user to hold one of them.
// Missing/invalid tokens and absent users yield 401; a role mismatch
// yields 403.
func (h *AuthHandler) Authorize(ctx context.Context, authorization string, roles ...models.Role) (*models.User, error) {
	tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tokenString == "" {
		return nil, huma.Error401Unauthorized("No token, authorization denied")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, huma.Error401Unauthorized("Invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, huma.Error401Unauthorized("Invalid token claims")
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, uint(userIDFloat)).Error; err != nil {
		return nil, huma.Error401Unauthorized("User no longer exists")
	}
	user.Password = ""

	if len(roles) > 0 {
		allowed := false
		for _, r := range roles {
			if user.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, huma.Error403Forbidden("Access denied")
		}
	}

	return &user, nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

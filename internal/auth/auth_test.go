package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
	"github.com/Pranitha-Thoutam/Event-Ease/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{})

	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, db), db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected a status error, got %T: %v", err, err)
	}
	return se.GetStatus()
}

func TestAuthorize(t *testing.T) {
	handler, db := setupAuth(t)

	user := models.User{Name: "testuser", Email: "test@example.com", Role: models.RoleUser}
	db.Create(&user)

	token, err := handler.GenerateToken(&user)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	t.Run("ValidToken", func(t *testing.T) {
		got, err := handler.Authorize(context.Background(), "Bearer "+token)
		if err != nil {
			t.Fatalf("Authorize returned error: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
		if got.Password != "" {
			t.Error("expected password to be stripped from authorized user")
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		_, err := handler.Authorize(context.Background(), "")
		if statusOf(t, err) != 401 {
			t.Errorf("expected 401, got %d", statusOf(t, err))
		}
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		_, err := handler.Authorize(context.Background(), token)
		if statusOf(t, err) != 401 {
			t.Errorf("expected 401 for header without Bearer prefix, got %d", statusOf(t, err))
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": user.ID,
			"role":    string(user.Role),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}
		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

		_, err := handler.Authorize(context.Background(), "Bearer "+expired)
		if statusOf(t, err) != 401 {
			t.Errorf("expected 401 for expired token, got %d", statusOf(t, err))
		}
	})

	t.Run("WrongSigningKey", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": user.ID,
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

		_, err := handler.Authorize(context.Background(), "Bearer "+forged)
		if statusOf(t, err) != 401 {
			t.Errorf("expected 401 for forged token, got %d", statusOf(t, err))
		}
	})

	t.Run("DeletedUser", func(t *testing.T) {
		ghost := models.User{Name: "ghost", Email: "ghost@example.com"}
		db.Create(&ghost)
		ghostToken, _ := handler.GenerateToken(&ghost)
		db.Unscoped().Delete(&ghost)

		_, err := handler.Authorize(context.Background(), "Bearer "+ghostToken)
		if statusOf(t, err) != 401 {
			t.Errorf("expected 401 for deleted user, got %d", statusOf(t, err))
		}
	})

	t.Run("RoleMismatch", func(t *testing.T) {
		_, err := handler.Authorize(context.Background(), "Bearer "+token, models.RoleAdmin)
		if statusOf(t, err) != 403 {
			t.Errorf("expected 403 for role mismatch, got %d", statusOf(t, err))
		}
	})

	t.Run("RoleMatch", func(t *testing.T) {
		admin := models.User{Name: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
		db.Create(&admin)
		adminToken, _ := handler.GenerateToken(&admin)

		got, err := handler.Authorize(context.Background(), "Bearer "+adminToken, models.RoleAdmin)
		if err != nil {
			t.Fatalf("Authorize returned error for admin: %v", err)
		}
		if got.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", got.Role)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("expected mismatched password to fail")
	}
}

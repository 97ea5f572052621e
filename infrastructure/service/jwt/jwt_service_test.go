package jwt

import (
	"testing"
	"time"

	"github.com/horolog/horolog/application/port/outbound"
)

func TestJWTService(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("GenerateAccessToken", func(t *testing.T) {
		token, err := service.GenerateAccessToken(outbound.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Errorf("Failed to generate access token: %v", err)
		}
		if token == "" {
			t.Error("Access token should not be empty")
		}
	})

	t.Run("ValidateAccessToken", func(t *testing.T) {
		tokenString, err := service.GenerateAccessToken(outbound.TokenClaims{
			UserID: "user123",
			Name:   "Ada",
			Email:  "ada@example.com",
			Role:   "admin",
		})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateAccessToken(tokenString)
		if err != nil {
			t.Fatalf("Failed to validate token: %v", err)
		}
		if claims.UserID != "user123" {
			t.Errorf("Expected user ID 'user123', got '%s'", claims.UserID)
		}
		if claims.Name != "Ada" || claims.Email != "ada@example.com" || claims.Role != "admin" {
			t.Errorf("Identity claims not round-tripped: %+v", claims)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		if err == nil {
			t.Error("Should fail to validate invalid token")
		}
	})

	t.Run("ValidateWrongSecret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(outbound.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		if _, err := service.ValidateAccessToken(token); err == nil {
			t.Error("Should reject token signed with a different secret")
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		shortService := NewJWTService("test-secret", -time.Minute)

		token, err := shortService.GenerateAccessToken(outbound.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Fatalf("Failed to generate access token: %v", err)
		}

		if _, err := shortService.ValidateAccessToken(token); err != ErrTokenExpired {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})
}

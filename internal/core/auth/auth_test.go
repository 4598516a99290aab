package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken(&TokenClaims{UserID: "u-1", Email: "owner@studio.test", Role: RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, &TokenClaims{UserID: "u-1", Email: "owner@studio.test", Role: RoleAdmin}, claims)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("other-secret", 0).GenerateAccessToken(&TokenClaims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 0).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMissingUser(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()})
	token, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 0).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRequireUser(t *testing.T) {
	_, err := RequireUser(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = RequireUser(WithUser(context.Background(), &User{}))
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := RequireUser(WithUser(context.Background(), &User{ID: "u-1"}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	sys, err := RequireUser(SystemContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, RoleSystem, sys.Role)
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	app := fiber.New()
	app.Get("/me", AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		user, err := RequireUser(c.UserContext())
		if err != nil {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(user.ID)
	})
	app.Get("/admin", AuthMiddleware(jwtService), RequireRole(RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	token, _, err := jwtService.GenerateAccessToken(&TokenClaims{UserID: "u-7", Role: RoleAssistant})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/me", "", fiber.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + token, fiber.StatusOK},
		{"role not allowed", "/admin", "Bearer " + token, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

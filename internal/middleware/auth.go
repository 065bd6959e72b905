package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/auth"
	"movie-recommendation-api/internal/models"
)

const userLocalsKey = "current_user"

// UserSource resolves a token subject to a user record.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Auth returns a middleware that enforces Bearer token authentication.
// Missing, malformed and expired tokens, and tokens for unknown users, are
// all rejected with the same authentication failure.
func Auth(tokens *auth.TokenManager, users UserSource) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "missing Authorization header")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "invalid Authorization header format, expected 'Bearer <token>'")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			return unauthorized(c, "empty bearer token")
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			return unauthorized(c, "invalid authentication credentials")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return unauthorized(c, "invalid authentication credentials")
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil when the
// request went through an unauthenticated route.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}

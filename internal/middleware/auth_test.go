package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/auth"
	"movie-recommendation-api/internal/models"
)

type fakeUserSource struct {
	users map[string]*models.User
}

func (s *fakeUserSource) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func newAuthTestApp(t *testing.T, tokens *auth.TokenManager, users UserSource) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", Auth(tokens, users), func(c fiber.Ctx) error {
		user := CurrentUser(c)
		require.NotNil(t, user)
		return c.JSON(fiber.Map{"email": user.Email})
	})
	return app
}

func TestAuthAllowsValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := &fakeUserSource{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "alice@example.com"},
	}}
	app := newAuthTestApp(t, tokens, users)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRejectsBadCredentials(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := &fakeUserSource{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "alice@example.com"},
	}}

	validForUnknownUser, err := auth.NewTokenManager("test-secret", time.Hour).Issue("ghost")
	require.NoError(t, err)
	expired, err := auth.NewTokenManager("test-secret", -time.Hour).Issue("user-1")
	require.NoError(t, err)
	wrongSecret, err := auth.NewTokenManager("other-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signing secret", "Bearer " + wrongSecret},
		{"unknown user", "Bearer " + validForUnknownUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(t, tokens, users)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/auth"
	"movie-recommendation-api/internal/models"
)

// UserStore is the persistence interface the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService handles registration, login and current-user lookup.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user account and returns an access token.
// A duplicate email is a conflict and creates no row.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenResponse(user)
}

// Login verifies credentials and returns an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("incorrect email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized("incorrect email or password")
	}

	return s.tokenResponse(user)
}

func (s *AuthService) tokenResponse(user *models.User) (*models.TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	}, nil
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/service"
)

// AuthHandler handles HTTP requests for registration, login and the
// current-user endpoint.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a new user account.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.TokenResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	resp, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and returns an access token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

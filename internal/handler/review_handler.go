package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/service"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	svc *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create stores or overwrites the user's review for a movie.
// @Summary Create or update review
// @Tags reviews
// @Accept json
// @Produce json
// @Success 201 {object} models.Review
// @Failure 422 {object} ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(c fiber.Ctx) error {
	var req models.CreateReviewRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	user := middleware.CurrentUser(c)
	review, err := h.svc.Create(c.Context(), user.ID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListForUser returns the authenticated user's reviews.
// @Summary List own reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.Review
// @Router /reviews/user [get]
func (h *ReviewHandler) ListForUser(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reviews, err := h.svc.ListForUser(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reviews)
}

// ListForMovie returns all reviews for a movie. Public.
// @Summary List movie reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {array} models.Review
// @Router /reviews/movie/{id} [get]
func (h *ReviewHandler) ListForMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	reviews, err := h.svc.ListForMovie(c.Context(), movieID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reviews)
}

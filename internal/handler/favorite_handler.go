package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/service"
)

// FavoriteHandler handles HTTP requests for the favorites list.
type FavoriteHandler struct {
	svc *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// Add puts a movie on the favorites list.
// @Summary Add favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Success 201 {object} models.UserMovie
// @Failure 409 {object} ErrorResponse
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c fiber.Ctx) error {
	var req models.AddMovieRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	user := middleware.CurrentUser(c)
	fav, err := h.svc.Add(c.Context(), user.ID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fav)
}

// List returns the user's favorites.
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Success 200 {array} models.UserMovie
// @Router /favorites [get]
func (h *FavoriteHandler) List(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	favorites, err := h.svc.List(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(favorites)
}

// Remove deletes a movie from the favorites list.
// @Summary Remove favorite
// @Tags favorites
// @Produce json
// @Param movie_id path int true "Movie ID"
// @Failure 404 {object} ErrorResponse
// @Router /favorites/{movie_id} [delete]
func (h *FavoriteHandler) Remove(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Remove(c.Context(), user.ID, movieID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "movie removed from favorites"})
}

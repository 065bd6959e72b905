package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/service"
)

// WatchlistHandler handles HTTP requests for watchlists.
type WatchlistHandler struct {
	svc *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// Create makes a new watchlist. Name and description come as query
// parameters.
// @Summary Create watchlist
// @Tags watchlists
// @Produce json
// @Param name query string true "Watchlist name"
// @Param description query string false "Watchlist description"
// @Success 201 {object} models.Watchlist
// @Router /watchlists [post]
func (h *WatchlistHandler) Create(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	wl, err := h.svc.Create(c.Context(), user.ID, c.Query("name"), c.Query("description"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wl)
}

// List returns the user's watchlists.
// @Summary List watchlists
// @Tags watchlists
// @Produce json
// @Success 200 {array} models.Watchlist
// @Router /watchlists [get]
func (h *WatchlistHandler) List(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	watchlists, err := h.svc.List(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(watchlists)
}

// AddMovie appends a movie to one of the user's watchlists.
// @Summary Add movie to watchlist
// @Tags watchlists
// @Accept json
// @Produce json
// @Param id path string true "Watchlist ID"
// @Success 201 {object} models.UserMovie
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /watchlists/{id}/movies [post]
func (h *WatchlistHandler) AddMovie(c fiber.Ctx) error {
	var req models.AddMovieRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	user := middleware.CurrentUser(c)
	movie, err := h.svc.AddMovie(c.Context(), user.ID, c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// RemoveMovie deletes a movie from one of the user's watchlists.
// @Summary Remove movie from watchlist
// @Tags watchlists
// @Produce json
// @Param id path string true "Watchlist ID"
// @Param movie_id path int true "Movie ID"
// @Failure 404 {object} ErrorResponse
// @Router /watchlists/{id}/movies/{movie_id} [delete]
func (h *WatchlistHandler) RemoveMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.RemoveMovie(c.Context(), user.ID, c.Params("id"), movieID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "movie removed from watchlist"})
}

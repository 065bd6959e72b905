package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/service"
	"movie-recommendation-api/internal/tmdb"
)

// MovieHandler handles the public movie catalog endpoints. Responses are
// provider-shaped JSON, passed through verbatim.
type MovieHandler struct {
	svc *service.CatalogService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.CatalogService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-recommendation-api",
	})
}

// Search queries the catalog by title.
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number" default(1)
// @Failure 502 {object} ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: "query parameter 'q' is required"})
	}
	page := fiber.Query(c, "page", 1)

	raw, err := h.svc.Search(c.Context(), query, page)
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

// Popular returns the provider's popular movies page.
// @Summary Popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Failure 502 {object} ErrorResponse
// @Router /movies/popular [get]
func (h *MovieHandler) Popular(c fiber.Ctx) error {
	raw, err := h.svc.Popular(c.Context(), fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

// TopRated returns the provider's top-rated movies page.
// @Summary Top rated movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Failure 502 {object} ErrorResponse
// @Router /movies/top-rated [get]
func (h *MovieHandler) TopRated(c fiber.Ctx) error {
	raw, err := h.svc.TopRated(c.Context(), fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

// Discover returns movies matching genre/year filters.
// @Summary Discover movies
// @Tags movies
// @Produce json
// @Param genre_id query int false "Genre filter"
// @Param year query int false "Release year filter"
// @Param sort_by query string false "Sort order" default(popularity.desc)
// @Param page query int false "Page number" default(1)
// @Failure 502 {object} ErrorResponse
// @Router /movies/discover [get]
func (h *MovieHandler) Discover(c fiber.Ctx) error {
	opts := tmdb.DiscoverOptions{
		GenreID: fiber.Query(c, "genre_id", 0),
		Year:    fiber.Query(c, "year", 0),
		SortBy:  c.Query("sort_by", "popularity.desc"),
		Page:    fiber.Query(c, "page", 1),
	}

	raw, err := h.svc.Discover(c.Context(), opts)
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

// Details returns full metadata for one movie.
// @Summary Movie details
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Details(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	raw, err := h.svc.Details(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

// Genres returns the provider's genre list.
// @Summary List genres
// @Tags movies
// @Produce json
// @Failure 502 {object} ErrorResponse
// @Router /genres [get]
func (h *MovieHandler) Genres(c fiber.Ctx) error {
	raw, err := h.svc.Genres(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, raw)
}

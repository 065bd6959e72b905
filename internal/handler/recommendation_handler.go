package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/service"
)

// RecommendationHandler handles the personalized recommendations endpoint.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Get returns a ranked movie page derived from the user's favorites.
// @Summary Personalized recommendations
// @Tags recommendations
// @Produce json
// @Failure 502 {object} ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) Get(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, err := h.svc.Recommend(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return sendRaw(c, page)
}

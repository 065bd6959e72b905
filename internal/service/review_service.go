package service

import (
	"context"

	"github.com/google/uuid"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

// ReviewStore is the persistence interface for reviews.
type ReviewStore interface {
	Upsert(ctx context.Context, rev *models.Review) error
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	ListByMovie(ctx context.Context, movieID int) ([]models.Review, error)
}

// ReviewService handles one-review-per-user-per-movie semantics.
type ReviewService struct {
	repo ReviewStore
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo ReviewStore) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create stores the user's review for a movie. A second review for the same
// movie overwrites the first's rating and text in place.
func (s *ReviewService) Create(ctx context.Context, userID string, req models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 0 || req.Rating > 10 {
		return nil, apperr.Validation("rating must be between 0 and 10")
	}

	rev := &models.Review{
		ID:         uuid.NewString(),
		UserID:     userID,
		MovieID:    req.MovieID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}
	if err := s.repo.Upsert(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// ListForUser returns all reviews written by the user.
func (s *ReviewService) ListForUser(ctx context.Context, userID string) ([]models.Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListForMovie returns all reviews for a movie.
func (s *ReviewService) ListForMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	return s.repo.ListByMovie(ctx, movieID)
}

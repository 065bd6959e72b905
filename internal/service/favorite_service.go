package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

const favoriteListLimit = 100

// FavoriteStore is the persistence interface for user favorites.
type FavoriteStore interface {
	Exists(ctx context.Context, userID string, movieID int) (bool, error)
	Insert(ctx context.Context, f *models.UserMovie) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.UserMovie, error)
	Delete(ctx context.Context, userID string, movieID int) (bool, error)
}

// FavoriteService handles the user's flat favorites list.
type FavoriteService struct {
	repo  FavoriteStore
	redis *redis.Client
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo FavoriteStore, rdb *redis.Client) *FavoriteService {
	return &FavoriteService{repo: repo, redis: rdb}
}

// Add puts a movie on the user's favorites list. Adding a movie that is
// already there is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID string, req models.AddMovieRequest) (*models.UserMovie, error) {
	exists, err := s.repo.Exists(ctx, userID, req.MovieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("movie already in favorites")
	}

	fav := &models.UserMovie{
		ID:          uuid.NewString(),
		UserID:      userID,
		MovieID:     req.MovieID,
		MovieTitle:  req.MovieTitle,
		MoviePoster: req.MoviePoster,
	}
	if err := s.repo.Insert(ctx, fav); err != nil {
		return nil, err
	}

	s.invalidateRecommendations(ctx, userID)
	return fav, nil
}

// List returns the user's favorites, most recently added first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.UserMovie, error) {
	return s.repo.ListByUser(ctx, userID, favoriteListLimit)
}

// Remove deletes a movie from the user's favorites. Removing a movie that is
// not on the list is a not-found condition, not a silent no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID string, movieID int) error {
	deleted, err := s.repo.Delete(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("movie not found in favorites")
	}

	s.invalidateRecommendations(ctx, userID)
	return nil
}

// invalidateRecommendations drops the user's cached recommendation page so
// the next request reflects the changed favorites.
func (s *FavoriteService) invalidateRecommendations(ctx context.Context, userID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, recommendationCacheKey(userID)).Err(); err != nil {
		slog.Error("failed to invalidate recommendation cache", "user_id", userID, "error", err)
	}
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

// WatchlistStore is the persistence interface for watchlists.
type WatchlistStore interface {
	Create(ctx context.Context, w *models.Watchlist) error
	GetByIDForUser(ctx context.Context, watchlistID, userID string) (*models.Watchlist, error)
	ListByUser(ctx context.Context, userID string) ([]models.Watchlist, error)
	ContainsMovie(ctx context.Context, watchlistID string, movieID int) (bool, error)
	AddMovie(ctx context.Context, watchlistID string, m *models.UserMovie) error
	RemoveMovie(ctx context.Context, watchlistID, userID string, movieID int) (bool, error)
}

// WatchlistService handles named, user-owned movie lists.
type WatchlistService struct {
	repo WatchlistStore
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(repo WatchlistStore) *WatchlistService {
	return &WatchlistService{repo: repo}
}

// Create makes a new empty watchlist for the user.
func (s *WatchlistService) Create(ctx context.Context, userID, name, description string) (*models.Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("watchlist name is required")
	}

	wl := &models.Watchlist{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Movies:      []models.UserMovie{},
	}
	if err := s.repo.Create(ctx, wl); err != nil {
		return nil, err
	}
	return wl, nil
}

// List returns the user's watchlists with their movies.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]models.Watchlist, error) {
	return s.repo.ListByUser(ctx, userID)
}

// AddMovie appends a movie to a watchlist the user owns. A watchlist never
// holds the same movie twice.
func (s *WatchlistService) AddMovie(ctx context.Context, userID, watchlistID string, req models.AddMovieRequest) (*models.UserMovie, error) {
	wl, err := s.repo.GetByIDForUser(ctx, watchlistID, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ContainsMovie(ctx, wl.ID, req.MovieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("movie already in watchlist")
	}

	movie := &models.UserMovie{
		ID:          uuid.NewString(),
		UserID:      userID,
		MovieID:     req.MovieID,
		MovieTitle:  req.MovieTitle,
		MoviePoster: req.MoviePoster,
	}
	if err := s.repo.AddMovie(ctx, wl.ID, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// RemoveMovie deletes a movie from a watchlist the user owns.
func (s *WatchlistService) RemoveMovie(ctx context.Context, userID, watchlistID string, movieID int) error {
	removed, err := s.repo.RemoveMovie(ctx, watchlistID, userID, movieID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("movie not found in watchlist")
	}
	return nil
}

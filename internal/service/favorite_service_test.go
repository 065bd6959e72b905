package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

type fakeFavoriteStore struct {
	items []models.UserMovie
}

func (s *fakeFavoriteStore) Exists(ctx context.Context, userID string, movieID int) (bool, error) {
	for _, f := range s.items {
		if f.UserID == userID && f.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFavoriteStore) Insert(ctx context.Context, f *models.UserMovie) error {
	f.AddedAt = time.Now()
	s.items = append(s.items, *f)
	return nil
}

func (s *fakeFavoriteStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.UserMovie, error) {
	// Most recently added first, like the SQL store
	out := make([]models.UserMovie, 0)
	for i := len(s.items) - 1; i >= 0 && len(out) < limit; i-- {
		if s.items[i].UserID == userID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *fakeFavoriteStore) Delete(ctx context.Context, userID string, movieID int) (bool, error) {
	for i, f := range s.items {
		if f.UserID == userID && f.MovieID == movieID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestAddFavorite(t *testing.T) {
	svc := NewFavoriteService(&fakeFavoriteStore{}, nil)

	fav, err := svc.Add(context.Background(), "user-1", models.AddMovieRequest{
		MovieID: 550, MovieTitle: "Fight Club", MoviePoster: "/poster.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, fav.ID)
	assert.Equal(t, "user-1", fav.UserID)
	assert.Equal(t, 550, fav.MovieID)

	favorites, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Fight Club", favorites[0].MovieTitle)
}

func TestAddDuplicateFavoriteIsConflict(t *testing.T) {
	svc := NewFavoriteService(&fakeFavoriteStore{}, nil)
	req := models.AddMovieRequest{MovieID: 550, MovieTitle: "Fight Club"}

	_, err := svc.Add(context.Background(), "user-1", req)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// A different user can still add the same movie
	_, err = svc.Add(context.Background(), "user-2", req)
	assert.NoError(t, err)
}

func TestRemoveMissingFavoriteIsNotFound(t *testing.T) {
	svc := NewFavoriteService(&fakeFavoriteStore{}, nil)

	err := svc.Remove(context.Background(), "user-1", 550)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRemoveFavorite(t *testing.T) {
	store := &fakeFavoriteStore{}
	svc := NewFavoriteService(store, nil)

	_, err := svc.Add(context.Background(), "user-1", models.AddMovieRequest{MovieID: 550, MovieTitle: "Fight Club"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "user-1", 550))

	favorites, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// Second removal reports not found instead of silently succeeding
	err = svc.Remove(context.Background(), "user-1", 550)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListFavoritesNewestFirst(t *testing.T) {
	store := &fakeFavoriteStore{}
	svc := NewFavoriteService(store, nil)

	for i, title := range []string{"First", "Second", "Third"} {
		_, err := svc.Add(context.Background(), "user-1", models.AddMovieRequest{MovieID: i + 1, MovieTitle: title})
		require.NoError(t, err)
	}

	favorites, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.Equal(t, "Third", favorites[0].MovieTitle)
	assert.Equal(t, "First", favorites[2].MovieTitle)
}

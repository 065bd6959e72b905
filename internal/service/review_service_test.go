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

// fakeReviewStore mirrors the SQL upsert: one row per (user, movie), and an
// update keeps the original id and created_at.
type fakeReviewStore struct {
	reviews []models.Review
}

func (s *fakeReviewStore) Upsert(ctx context.Context, rev *models.Review) error {
	for i, r := range s.reviews {
		if r.UserID == rev.UserID && r.MovieID == rev.MovieID {
			rev.ID = r.ID
			rev.CreatedAt = r.CreatedAt
			s.reviews[i].Rating = rev.Rating
			s.reviews[i].ReviewText = rev.ReviewText
			return nil
		}
	}
	rev.CreatedAt = time.Now()
	s.reviews = append(s.reviews, *rev)
	return nil
}

func (s *fakeReviewStore) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) ListByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestCreateReview(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})

	rev, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{
		MovieID: 550, Rating: 8.5, ReviewText: "Great movie",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rev.ID)
	assert.Equal(t, 8.5, rev.Rating)

	reviews, err := svc.ListForMovie(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great movie", reviews[0].ReviewText)
}

func TestSecondReviewUpdatesInPlace(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store)

	first, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{
		MovieID: 550, Rating: 5, ReviewText: "Fine",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{
		MovieID: 550, Rating: 9, ReviewText: "Grew on me",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	reviews, err := svc.ListForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 9.0, reviews[0].Rating)
	assert.Equal(t, "Grew on me", reviews[0].ReviewText)
}

func TestReviewsAreSeparatePerUser(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})

	_, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{MovieID: 550, Rating: 8})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", models.CreateReviewRequest{MovieID: 550, Rating: 4})
	require.NoError(t, err)

	reviews, err := svc.ListForMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestReviewRatingBounds(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})

	for _, rating := range []float64{-0.5, 10.5} {
		_, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{MovieID: 550, Rating: rating})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}

	// Boundary values are accepted
	for _, rating := range []float64{0, 10} {
		_, err := svc.Create(context.Background(), "user-1", models.CreateReviewRequest{MovieID: int(rating) + 1, Rating: rating})
		assert.NoError(t, err)
	}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-recommendation-api/internal/models"
)

// ReviewRepository handles database operations for reviews.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert creates a review or, when the (user, movie) pair already has one,
// overwrites its rating and text in place. The original id and created_at
// are kept on update.
func (r *ReviewRepository) Upsert(ctx context.Context, rev *models.Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (id, user_id, movie_id, rating, review_text)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review_text = EXCLUDED.review_text
		RETURNING id, created_at
	`, rev.ID, rev.UserID, rev.MovieID, rev.Rating, rev.ReviewText).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

// ListByUser returns all reviews written by a user.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, `
		SELECT id, user_id, movie_id, rating, COALESCE(review_text, ''), created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

// ListByMovie returns all reviews for a movie.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	return r.list(ctx, `
		SELECT id, user_id, movie_id, rating, COALESCE(review_text, ''), created_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at DESC
	`, movieID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, arg any) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Rating, &rev.ReviewText, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

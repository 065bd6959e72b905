package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

// FavoriteRepository handles database operations for user favorites.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Exists reports whether the user already has the movie in favorites.
func (r *FavoriteRepository) Exists(ctx context.Context, userID string, movieID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND movie_id = $2)
	`, userID, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Insert adds a favorite entry. The unique constraint backstops concurrent
// duplicate adds that pass the existence check.
func (r *FavoriteRepository) Insert(ctx context.Context, f *models.UserMovie) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO favorites (id, user_id, movie_id, movie_title, movie_poster)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING added_at
	`, f.ID, f.UserID, f.MovieID, f.MovieTitle, f.MoviePoster).Scan(&f.AddedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("movie already in favorites")
	}
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// ListByUser returns the user's favorites, most recently added first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.UserMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, movie_id, movie_title, COALESCE(movie_poster, ''), added_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY added_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]models.UserMovie, 0)
	for rows.Next() {
		var f models.UserMovie
		if err := rows.Scan(&f.ID, &f.UserID, &f.MovieID, &f.MovieTitle, &f.MoviePoster, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Delete removes a favorite entry and reports whether a row was removed.
func (r *FavoriteRepository) Delete(ctx context.Context, userID string, movieID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted favorites: %w", err)
	}
	return n > 0, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-recommendation-api/internal/apperr"
	"movie-recommendation-api/internal/models"
)

// WatchlistRepository handles database operations for watchlists and the
// movies they hold.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create inserts a new watchlist.
func (r *WatchlistRepository) Create(ctx context.Context, w *models.Watchlist) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO watchlists (id, user_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, w.ID, w.UserID, w.Name, w.Description).Scan(&w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create watchlist: %w", err)
	}
	return nil
}

// GetByIDForUser returns a watchlist only when it belongs to the given user.
func (r *WatchlistRepository) GetByIDForUser(ctx context.Context, watchlistID, userID string) (*models.Watchlist, error) {
	var w models.Watchlist
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), created_at
		FROM watchlists
		WHERE id = $1 AND user_id = $2
	`, watchlistID, userID).Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("watchlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}

	movies, err := r.listMovies(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	w.Movies = movies
	return &w, nil
}

// ListByUser returns the user's watchlists with their movies.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]models.Watchlist, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), created_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlists: %w", err)
	}
	defer rows.Close()

	watchlists := make([]models.Watchlist, 0)
	for rows.Next() {
		var w models.Watchlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist: %w", err)
		}
		watchlists = append(watchlists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range watchlists {
		movies, err := r.listMovies(ctx, watchlists[i].ID)
		if err != nil {
			return nil, err
		}
		watchlists[i].Movies = movies
	}
	return watchlists, nil
}

// ContainsMovie reports whether the watchlist already holds the movie.
func (r *WatchlistRepository) ContainsMovie(ctx context.Context, watchlistID string, movieID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM watchlist_movies WHERE watchlist_id = $1 AND movie_id = $2)
	`, watchlistID, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist movie: %w", err)
	}
	return exists, nil
}

// AddMovie inserts a movie reference into a watchlist.
func (r *WatchlistRepository) AddMovie(ctx context.Context, watchlistID string, m *models.UserMovie) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO watchlist_movies (id, watchlist_id, user_id, movie_id, movie_title, movie_poster)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING added_at
	`, m.ID, watchlistID, m.UserID, m.MovieID, m.MovieTitle, m.MoviePoster).Scan(&m.AddedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("movie already in watchlist")
	}
	if err != nil {
		return fmt.Errorf("failed to add watchlist movie: %w", err)
	}
	return nil
}

// RemoveMovie deletes a movie from a watchlist scoped by owner and reports
// whether a row was removed.
func (r *WatchlistRepository) RemoveMovie(ctx context.Context, watchlistID, userID string, movieID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM watchlist_movies
		WHERE watchlist_id = $1 AND user_id = $2 AND movie_id = $3
	`, watchlistID, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to remove watchlist movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count removed movies: %w", err)
	}
	return n > 0, nil
}

func (r *WatchlistRepository) listMovies(ctx context.Context, watchlistID string) ([]models.UserMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, movie_id, movie_title, COALESCE(movie_poster, ''), added_at
		FROM watchlist_movies
		WHERE watchlist_id = $1
		ORDER BY added_at
	`, watchlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist movies: %w", err)
	}
	defer rows.Close()

	movies := make([]models.UserMovie, 0)
	for rows.Next() {
		var m models.UserMovie
		if err := rows.Scan(&m.ID, &m.UserID, &m.MovieID, &m.MovieTitle, &m.MoviePoster, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

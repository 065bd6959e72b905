package models

import "time"

// UserMovie is a movie reference held in a user collection, carrying the
// denormalized display fields the UI needs without a provider round-trip.
// The same shape backs favorites and watchlist entries.
type UserMovie struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MovieID     int       `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster string    `json:"movie_poster"`
	AddedAt     time.Time `json:"added_at"`
}

// AddMovieRequest is the request body for adding a movie to favorites or to
// a watchlist.
type AddMovieRequest struct {
	MovieID     int    `json:"movie_id" validate:"required,gt=0"`
	MovieTitle  string `json:"movie_title" validate:"required"`
	MoviePoster string `json:"movie_poster"`
}

// Watchlist is a named, user-owned collection of movie references.
type Watchlist struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Movies      []UserMovie `json:"movies"`
	CreatedAt   time.Time   `json:"created_at"`
}

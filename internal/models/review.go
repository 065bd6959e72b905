package models

import "time"

// Review is a user's rating and optional text for a movie. At most one
// review exists per (user, movie) pair.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MovieID    int       `json:"movie_id"`
	Rating     float64   `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReviewRequest is the request body for creating or updating a review.
type CreateReviewRequest struct {
	MovieID    int     `json:"movie_id" validate:"required,gt=0"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=10"`
	ReviewText string  `json:"review_text"`
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-recommendation-api/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER NOT NULL,
			movie_title VARCHAR(500) NOT NULL,
			movie_poster VARCHAR(500) DEFAULT '',
			added_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, movie_id)
		)`,
		`CREATE TABLE IF NOT EXISTS watchlists (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist_movies (
			id VARCHAR(36) PRIMARY KEY,
			watchlist_id VARCHAR(36) NOT NULL REFERENCES watchlists(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER NOT NULL,
			movie_title VARCHAR(500) NOT NULL,
			movie_poster VARCHAR(500) DEFAULT '',
			added_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (watchlist_id, movie_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER NOT NULL,
			rating DOUBLE PRECISION NOT NULL,
			review_text TEXT DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, movie_id)
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_favorites_user_added ON favorites(user_id, added_at)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlists_user ON watchlists(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_movies_list ON watchlist_movies(watchlist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_movie ON reviews(movie_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}

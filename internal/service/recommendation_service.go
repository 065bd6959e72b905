package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/tmdb"
)

const (
	favoriteFetchLimit     = 50
	genreSampleSize        = 10
	recommendationCacheTTL = 10 * time.Minute
)

// FavoriteSource supplies the favorites a recommendation is derived from.
type FavoriteSource interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.UserMovie, error)
}

// RecommendationService derives a ranked movie page for a user from the
// genres of their recent favorites.
type RecommendationService struct {
	favorites FavoriteSource
	catalog   *CatalogService
	redis     *redis.Client
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(favorites FavoriteSource, catalog *CatalogService, rdb *redis.Client) *RecommendationService {
	return &RecommendationService{favorites: favorites, catalog: catalog, redis: rdb}
}

// Recommend returns a provider-shaped movie page for the user. It degrades
// through three tiers: genre-filtered discovery from the user's favorites,
// the popular page when the user has no favorites, and the top-rated page
// when no genre can be derived or discovery comes back empty. A failing
// details call for a single favorite is skipped, never fatal.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) (json.RawMessage, error) {
	cacheKey := recommendationCacheKey(userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			slog.Debug("recommendations cache hit", "user_id", userID)
			return json.RawMessage(cached), nil
		}
	}

	favorites, err := s.favorites.ListByUser(ctx, userID, favoriteFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	if len(favorites) == 0 {
		page, err := s.catalog.Popular(ctx, 1)
		if err != nil {
			return nil, err
		}
		s.cache(ctx, cacheKey, page)
		return page, nil
	}

	counts := s.countGenres(ctx, favorites)

	if genreID, ok := topGenre(counts); ok {
		page, err := s.catalog.Discover(ctx, tmdb.DiscoverOptions{
			GenreID: genreID,
			SortBy:  "vote_average.desc",
			Page:    1,
		})
		switch {
		case err != nil:
			slog.Warn("discover failed, falling back to top rated", "user_id", userID, "genre_id", genreID, "error", err)
		case !hasResults(page):
			slog.Warn("discover returned no results, falling back to top rated", "user_id", userID, "genre_id", genreID)
		default:
			s.cache(ctx, cacheKey, page)
			return page, nil
		}
	}

	page, err := s.catalog.TopRated(ctx, 1)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, cacheKey, page)
	return page, nil
}

// countGenres tallies genre occurrences across the most recent favorites.
// Favorites whose details cannot be fetched contribute nothing.
func (s *RecommendationService) countGenres(ctx context.Context, favorites []models.UserMovie) map[int]int {
	counts := make(map[int]int)
	for _, fav := range favorites[:min(len(favorites), genreSampleSize)] {
		raw, err := s.catalog.Details(ctx, fav.MovieID)
		if err != nil {
			slog.Warn("skipping favorite, movie details unavailable", "movie_id", fav.MovieID, "error", err)
			continue
		}

		var detail struct {
			Genres []struct {
				ID int `json:"id"`
			} `json:"genres"`
		}
		if err := json.Unmarshal(raw, &detail); err != nil {
			slog.Warn("skipping favorite, malformed movie details", "movie_id", fav.MovieID, "error", err)
			continue
		}

		for _, g := range detail.Genres {
			counts[g.ID]++
		}
	}
	return counts
}

// topGenre picks the most frequent genre; ties go to the lowest genre ID so
// the choice is stable across runs.
func topGenre(counts map[int]int) (int, bool) {
	best, bestCount := 0, 0
	for id, n := range counts {
		if n > bestCount || (n == bestCount && id < best) {
			best, bestCount = id, n
		}
	}
	return best, bestCount > 0
}

func hasResults(page json.RawMessage) bool {
	var body struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(page, &body); err != nil {
		return false
	}
	return len(body.Results) > 0
}

func (s *RecommendationService) cache(ctx context.Context, key string, page json.RawMessage) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(page), recommendationCacheTTL).Err(); err != nil {
		slog.Error("failed to cache recommendations", "key", key, "error", err)
	}
}

func recommendationCacheKey(userID string) string {
	return fmt.Sprintf("recommendations:%s", userID)
}

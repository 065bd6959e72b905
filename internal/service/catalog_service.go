package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-api/internal/tmdb"
)

const (
	catalogListCacheTTL   = 5 * time.Minute
	catalogDetailCacheTTL = 30 * time.Minute
	catalogGenreCacheTTL  = 30 * time.Minute
)

// CatalogService exposes the external movie catalog, caching the stable
// read paths in Redis. Responses stay provider-shaped.
type CatalogService struct {
	tmdb  *tmdb.Client
	redis *redis.Client
}

// NewCatalogService creates a new CatalogService. rdb may be nil, in which
// case every call goes straight to the provider.
func NewCatalogService(client *tmdb.Client, rdb *redis.Client) *CatalogService {
	return &CatalogService{tmdb: client, redis: rdb}
}

// Search queries movies by title. Not cached: the query space is unbounded.
func (s *CatalogService) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	return s.tmdb.Search(ctx, query, page)
}

// Popular returns the popular movies page.
func (s *CatalogService) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	key := fmt.Sprintf("tmdb:popular:%d", page)
	return s.cached(ctx, key, catalogListCacheTTL, func() (json.RawMessage, error) {
		return s.tmdb.Popular(ctx, page)
	})
}

// TopRated returns the top-rated movies page.
func (s *CatalogService) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	key := fmt.Sprintf("tmdb:top_rated:%d", page)
	return s.cached(ctx, key, catalogListCacheTTL, func() (json.RawMessage, error) {
		return s.tmdb.TopRated(ctx, page)
	})
}

// Discover returns movies matching the given filters. Not cached.
func (s *CatalogService) Discover(ctx context.Context, opts tmdb.DiscoverOptions) (json.RawMessage, error) {
	return s.tmdb.Discover(ctx, opts)
}

// Details returns full metadata for a single movie.
func (s *CatalogService) Details(ctx context.Context, movieID int) (json.RawMessage, error) {
	key := fmt.Sprintf("tmdb:movie:%d", movieID)
	return s.cached(ctx, key, catalogDetailCacheTTL, func() (json.RawMessage, error) {
		return s.tmdb.Details(ctx, movieID)
	})
}

// Genres returns the provider's genre list.
func (s *CatalogService) Genres(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, "tmdb:genres", catalogGenreCacheTTL, func() (json.RawMessage, error) {
		return s.tmdb.Genres(ctx)
	})
}

func (s *CatalogService) cached(ctx context.Context, key string, ttl time.Duration, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			slog.Debug("cache hit", "key", key)
			return json.RawMessage(cached), nil
		}
	}

	raw, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, string(raw), ttl).Err(); err != nil {
			slog.Error("failed to set cache", "key", key, "error", err)
		}
	}
	return raw, nil
}

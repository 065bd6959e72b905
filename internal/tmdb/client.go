// Package tmdb wraps the external movie-metadata provider. All responses are
// passed through as provider-shaped JSON; a non-success response is a total
// failure for that call.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"movie-recommendation-api/internal/apperr"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// DiscoverOptions are the supported filters for the discover endpoint.
type DiscoverOptions struct {
	GenreID int
	Year    int
	SortBy  string
	Page    int
}

// Search queries movies by title.
func (c *Client) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/search/movie", params)
}

// Details fetches full metadata for a single movie, including genres.
func (c *Client) Details(ctx context.Context, movieID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil)
}

// Popular fetches the current popular movies page.
func (c *Client) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/movie/popular", params)
}

// TopRated fetches the top-rated movies page.
func (c *Client) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/movie/top_rated", params)
}

// Discover fetches movies matching the given filters.
func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) (json.RawMessage, error) {
	if opts.SortBy == "" {
		opts.SortBy = "popularity.desc"
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	params := url.Values{}
	params.Set("sort_by", opts.SortBy)
	params.Set("page", strconv.Itoa(opts.Page))
	if opts.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(opts.GenreID))
	}
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}
	return c.get(ctx, "/discover/movie", params)
}

// Genres fetches the movie genre list.
func (c *Client) Genres(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/genre/movie/list", nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	slog.Debug("fetching TMDB", "path", path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build TMDB request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read TMDB response: %s", apperr.ErrUpstream, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("movie not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(fmt.Sprintf("TMDB API returned status %d", resp.StatusCode))
	}

	return body, nil
}

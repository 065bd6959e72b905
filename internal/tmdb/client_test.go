package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-api/internal/apperr"
)

func TestSearchPassesThroughProviderJSON(t *testing.T) {
	payload := `{"page":2,"results":[{"id":11,"title":"Star Wars"}],"total_pages":5,"total_results":99}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "star wars", q.Get("query"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	raw, err := c.Search(context.Background(), "star wars", 2)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestDiscoverQueryParameters(t *testing.T) {
	tests := []struct {
		name string
		opts DiscoverOptions
		want map[string]string
	}{
		{
			name: "genre filter with rating sort",
			opts: DiscoverOptions{GenreID: 28, SortBy: "vote_average.desc", Page: 1},
			want: map[string]string{"with_genres": "28", "sort_by": "vote_average.desc", "page": "1"},
		},
		{
			name: "defaults applied",
			opts: DiscoverOptions{},
			want: map[string]string{"sort_by": "popularity.desc", "page": "1", "with_genres": ""},
		},
		{
			name: "year filter",
			opts: DiscoverOptions{Year: 1999, Page: 3},
			want: map[string]string{"year": "1999", "page": "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/discover/movie", r.URL.Path)
				for key, val := range tt.want {
					assert.Equal(t, val, r.URL.Query().Get(key), "param %s", key)
				}
				w.Write([]byte(`{"results":[]}`))
			}))
			defer srv.Close()

			c := NewClient("test-key", srv.URL)
			_, err := c.Discover(context.Background(), tt.opts)
			require.NoError(t, err)
		})
	}
}

func TestProviderErrorIsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)

	_, err := c.Popular(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	_, err = c.Genres(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestUnreachableProviderIsUpstreamFailure(t *testing.T) {
	c := NewClient("test-key", "http://127.0.0.1:1")
	_, err := c.TopRated(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestMissingMovieIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	_, err := c.Details(context.Background(), 99999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

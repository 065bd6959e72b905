package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-api/internal/models"
	"movie-recommendation-api/internal/tmdb"
)

const (
	popularPage  = `{"page":1,"results":[{"id":100,"title":"Popular Pick"}],"total_pages":1}`
	topRatedPage = `{"page":1,"results":[{"id":200,"title":"Top Rated Pick"}],"total_pages":1}`
	discoverPage = `{"page":1,"results":[{"id":300,"title":"Genre Pick"}],"total_pages":1}`
	emptyPage    = `{"page":1,"results":[],"total_pages":0}`
)

type stubFavoriteSource struct {
	favorites []models.UserMovie
}

func (s *stubFavoriteSource) ListByUser(ctx context.Context, userID string, limit int) ([]models.UserMovie, error) {
	if len(s.favorites) > limit {
		return s.favorites[:limit], nil
	}
	return s.favorites, nil
}

// catalogServer fakes the provider API. detailGenres maps movie ID to the
// genre IDs its details report; movies absent from the map return 404.
type catalogServer struct {
	detailGenres map[int][]int
	discoverBody string
	discoverURLs []string
}

func (cs *catalogServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/movie/popular":
			fmt.Fprint(w, popularPage)
		case r.URL.Path == "/movie/top_rated":
			fmt.Fprint(w, topRatedPage)
		case r.URL.Path == "/discover/movie":
			cs.discoverURLs = append(cs.discoverURLs, r.URL.String())
			fmt.Fprint(w, cs.discoverBody)
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			var movieID int
			fmt.Sscanf(r.URL.Path, "/movie/%d", &movieID)
			genres, ok := cs.detailGenres[movieID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"status_message":"The resource you requested could not be found."}`)
				return
			}
			items := make([]string, len(genres))
			for i, id := range genres {
				items[i] = fmt.Sprintf(`{"id":%d,"name":"Genre %d"}`, id, id)
			}
			fmt.Fprintf(w, `{"id":%d,"title":"Movie %d","genres":[%s]}`, movieID, movieID, strings.Join(items, ","))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestRecommendationService(t *testing.T, cs *catalogServer, favorites ...models.UserMovie) *RecommendationService {
	t.Helper()
	srv := httptest.NewServer(cs.handler())
	t.Cleanup(srv.Close)

	catalog := NewCatalogService(tmdb.NewClient("test-key", srv.URL), nil)
	return NewRecommendationService(&stubFavoriteSource{favorites: favorites}, catalog, nil)
}

func favorite(movieID int) models.UserMovie {
	return models.UserMovie{
		ID:      fmt.Sprintf("fav-%d", movieID),
		UserID:  "user-1",
		MovieID: movieID,
		AddedAt: time.Now(),
	}
}

func TestRecommendWithoutFavoritesReturnsPopular(t *testing.T) {
	svc := newTestRecommendationService(t, &catalogServer{discoverBody: discoverPage})

	page, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, popularPage, string(page))
}

func TestRecommendDiscoversByDominantGenre(t *testing.T) {
	// Two favorites tagged Action(28), one of them also Drama(18):
	// Action wins and drives the discover query.
	cs := &catalogServer{
		detailGenres: map[int][]int{
			550: {28, 18},
			551: {28},
		},
		discoverBody: discoverPage,
	}
	svc := newTestRecommendationService(t, cs, favorite(550), favorite(551))

	page, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, discoverPage, string(page))

	require.Len(t, cs.discoverURLs, 1)
	assert.Contains(t, cs.discoverURLs[0], "with_genres=28")
	assert.Contains(t, cs.discoverURLs[0], "sort_by=vote_average.desc")
}

func TestRecommendGenreTieBreaksToLowestID(t *testing.T) {
	// Drama(18) and Action(28) each appear once; the lower ID wins.
	cs := &catalogServer{
		detailGenres: map[int][]int{550: {28, 18}},
		discoverBody: discoverPage,
	}
	svc := newTestRecommendationService(t, cs, favorite(550))

	_, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, cs.discoverURLs, 1)
	assert.Contains(t, cs.discoverURLs[0], "with_genres=18")
}

func TestRecommendFallsBackWhenDetailsUnavailable(t *testing.T) {
	// Details fail for every favorite, so no genre can be derived and the
	// top-rated page comes back instead of an error.
	cs := &catalogServer{discoverBody: discoverPage}
	svc := newTestRecommendationService(t, cs, favorite(550), favorite(551))

	page, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, topRatedPage, string(page))
	assert.Empty(t, cs.discoverURLs)
}

func TestRecommendSkipsFailingFavorites(t *testing.T) {
	// One favorite's details 404; the other still drives the genre pick.
	cs := &catalogServer{
		detailGenres: map[int][]int{551: {35}},
		discoverBody: discoverPage,
	}
	svc := newTestRecommendationService(t, cs, favorite(550), favorite(551))

	page, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, discoverPage, string(page))

	require.Len(t, cs.discoverURLs, 1)
	assert.Contains(t, cs.discoverURLs[0], "with_genres=35")
}

func TestRecommendFallsBackWhenDiscoverIsEmpty(t *testing.T) {
	cs := &catalogServer{
		detailGenres: map[int][]int{550: {28}},
		discoverBody: emptyPage,
	}
	svc := newTestRecommendationService(t, cs, favorite(550))

	page, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, topRatedPage, string(page))
	assert.Len(t, cs.discoverURLs, 1)
}

func TestRecommendSamplesAtMostTenFavorites(t *testing.T) {
	// Favorites beyond the sample window must not be fetched. The eleventh
	// favorite is the only one tagged Comedy(35); it gets ignored and the
	// genre from the sampled ten wins.
	genres := map[int][]int{}
	var favorites []models.UserMovie
	for i := 1; i <= 10; i++ {
		genres[i] = []int{28}
		favorites = append(favorites, favorite(i))
	}
	genres[11] = []int{35}
	favorites = append(favorites, favorite(11))

	cs := &catalogServer{detailGenres: genres, discoverBody: discoverPage}
	svc := newTestRecommendationService(t, cs, favorites...)

	_, err := svc.Recommend(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, cs.discoverURLs, 1)
	assert.Contains(t, cs.discoverURLs[0], "with_genres=28")
}

func TestTopGenre(t *testing.T) {
	tests := []struct {
		name   string
		counts map[int]int
		want   int
		ok     bool
	}{
		{"empty", map[int]int{}, 0, false},
		{"single", map[int]int{28: 3}, 28, true},
		{"clear winner", map[int]int{28: 3, 18: 1}, 28, true},
		{"tie goes to lowest id", map[int]int{28: 2, 18: 2, 35: 2}, 18, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := topGenre(tt.counts)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasResults(t *testing.T) {
	assert.True(t, hasResults(json.RawMessage(discoverPage)))
	assert.False(t, hasResults(json.RawMessage(emptyPage)))
	assert.False(t, hasResults(json.RawMessage(`{"page":1}`)))
	assert.False(t, hasResults(json.RawMessage(`not json`)))
}

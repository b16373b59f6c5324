package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/apperrors"
	"github.com/cinevault/cinevault/pkg/movies"
)

func sampleMovie(id, userID string) *movies.Movie {
	return &movies.Movie{
		ID:          id,
		Title:       "Dune",
		Duration:    155,
		ReleaseDate: time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		UserID:      userID,
	}
}

func TestCreateMovie(t *testing.T) {
	f := newFixture(t)
	f.movies.createFn = func(_ context.Context, input movies.CreateInput, userID string) (*movies.Movie, error) {
		assert.Equal(t, "Dune", input.Title)
		assert.Equal(t, "user-1", userID)
		return sampleMovie("movie-1", userID), nil
	}

	body := `{"title":"Dune","duration":155,"releaseDate":"2026-10-22T00:00:00Z"}`
	rec, env := f.do(t, http.MethodPost, "/api/movies", f.accessToken(t, "user-1"), strings.NewReader(body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "movie created successfully", env.Message)

	var movie movies.Movie
	require.NoError(t, json.Unmarshal(env.Data, &movie))
	assert.Equal(t, "movie-1", movie.ID)
}

func TestCreateMovieRequiresAuth(t *testing.T) {
	f := newFixture(t)

	body := `{"title":"Dune","duration":155,"releaseDate":"2026-10-22T00:00:00Z"}`
	rec, _ := f.do(t, http.MethodPost, "/api/movies", "", strings.NewReader(body))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateMovieValidationFailure(t *testing.T) {
	f := newFixture(t)
	f.movies.createFn = func(context.Context, movies.CreateInput, string) (*movies.Movie, error) {
		t.Fatal("service must not be called on invalid input")
		return nil, nil
	}

	body := `{"title":"","duration":0}`
	rec, _ := f.do(t, http.MethodPost, "/api/movies", f.accessToken(t, "user-1"), strings.NewReader(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMovie(t *testing.T) {
	f := newFixture(t)
	f.movies.getFn = func(_ context.Context, id string) (*movies.Movie, error) {
		assert.Equal(t, "movie-1", id)
		return sampleMovie(id, "user-1"), nil
	}

	// Reads are public, no token needed.
	rec, env := f.do(t, http.MethodGet, "/api/movies/movie-1", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var movie movies.Movie
	require.NoError(t, json.Unmarshal(env.Data, &movie))
	assert.Equal(t, "Dune", movie.Title)
}

func TestGetMovieNotFound(t *testing.T) {
	f := newFixture(t)
	f.movies.getFn = func(context.Context, string) (*movies.Movie, error) {
		return nil, apperrors.NotFound("movie not found")
	}

	rec, env := f.do(t, http.MethodGet, "/api/movies/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "movie not found", env.Error.Message)
}

func TestListMoviesParsesFilters(t *testing.T) {
	f := newFixture(t)
	var got movies.Filters
	f.movies.listFn = func(_ context.Context, filters movies.Filters) (*movies.PaginatedMovies, error) {
		got = filters
		return &movies.PaginatedMovies{
			Movies: []*movies.Movie{sampleMovie("movie-1", "user-1")},
			Pagination: movies.Pagination{
				Page: 2, Limit: 5, Total: 11, TotalPages: 3, HasNext: true, HasPrev: true,
			},
		}, nil
	}

	path := "/api/movies?title=dune&genre=scifi&minDuration=90&maxRating=9.5&startDate=2026-01-01T00:00:00Z&page=2&limit=5"
	rec, env := f.do(t, http.MethodGet, path, "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dune", got.Title)
	assert.Equal(t, "scifi", got.Genre)
	require.NotNil(t, got.MinDuration)
	assert.Equal(t, 90, *got.MinDuration)
	require.NotNil(t, got.MaxRating)
	assert.Equal(t, 9.5, *got.MaxRating)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, 2026, got.StartDate.Year())
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)

	var data struct {
		Movies     []*movies.Movie   `json:"movies"`
		Pagination movies.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Movies, 1)
	assert.True(t, data.Pagination.HasNext)
}

func TestListMoviesRejectsMalformedFilter(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/movies?minDuration=soon", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMovie(t *testing.T) {
	f := newFixture(t)
	f.movies.updateFn = func(_ context.Context, id string, input movies.UpdateInput, callerID string) (*movies.Movie, error) {
		assert.Equal(t, "movie-1", id)
		assert.Equal(t, "user-1", callerID)
		require.NotNil(t, input.Title)
		assert.Equal(t, "Dune: Part Two", *input.Title)
		assert.Nil(t, input.Duration)
		movie := sampleMovie(id, callerID)
		movie.Title = *input.Title
		return movie, nil
	}

	body := `{"title":"Dune: Part Two"}`
	rec, env := f.do(t, http.MethodPut, "/api/movies/movie-1", f.accessToken(t, "user-1"), strings.NewReader(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "movie updated successfully", env.Message)
}

func TestUpdateMovieForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	f.movies.updateFn = func(context.Context, string, movies.UpdateInput, string) (*movies.Movie, error) {
		return nil, apperrors.Forbidden("only the creator of the movie can edit it")
	}

	body := `{"title":"Hijacked"}`
	rec, env := f.do(t, http.MethodPut, "/api/movies/movie-1", f.accessToken(t, "intruder"), strings.NewReader(body))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
}

func TestDeleteMovie(t *testing.T) {
	f := newFixture(t)
	f.movies.deleteFn = func(_ context.Context, id, callerID string) error {
		assert.Equal(t, "movie-1", id)
		assert.Equal(t, "user-1", callerID)
		return nil
	}

	rec, env := f.do(t, http.MethodDelete, "/api/movies/movie-1", f.accessToken(t, "user-1"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "movie deleted successfully", env.Message)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/cinevault/cinevault/pkg/movies"
)

const movieColumns = `id, title, description, duration, release_date, image_url,
	genre, director, cast_members, rating, tagline, trailer_url, user_id,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*movies.Movie, error) {
	var m movies.Movie
	var cast pq.StringArray

	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Duration,
		&m.ReleaseDate,
		&m.ImageURL,
		&m.Genre,
		&m.Director,
		&cast,
		&m.Rating,
		&m.Tagline,
		&m.TrailerURL,
		&m.UserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Cast = []string(cast)
	return &m, nil
}

// Create inserts a new catalog entry.
func (s *Store) Create(ctx context.Context, movie *movies.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, duration, release_date, image_url,
			genre, director, cast_members, rating, tagline, trailer_url, user_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.db.ExecContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Duration,
		movie.ReleaseDate,
		movie.ImageURL,
		movie.Genre,
		movie.Director,
		pq.Array(movie.Cast),
		movie.Rating,
		movie.Tagline,
		movie.TrailerURL,
		movie.UserID,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// GetByID looks up one movie.
func (s *Store) GetByID(ctx context.Context, id string) (*movies.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	movie, err := scanMovie(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, movies.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// buildMovieFilters assembles the WHERE clause for List. Text filters are
// case-insensitive substring matches; numeric/date filters are inclusive
// range bounds.
func buildMovieFilters(f movies.Filters) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(format string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.Title != "" {
		add("title ILIKE '%%' || $%d || '%%'", f.Title)
	}
	if f.Genre != "" {
		add("genre ILIKE '%%' || $%d || '%%'", f.Genre)
	}
	if f.Director != "" {
		add("director ILIKE '%%' || $%d || '%%'", f.Director)
	}
	if f.MinDuration != nil {
		add("duration >= $%d", *f.MinDuration)
	}
	if f.MaxDuration != nil {
		add("duration <= $%d", *f.MaxDuration)
	}
	if f.MinRating != nil {
		add("rating >= $%d", *f.MinRating)
	}
	if f.MaxRating != nil {
		add("rating <= $%d", *f.MaxRating)
	}
	if f.StartDate != nil {
		add("release_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("release_date <= $%d", *f.EndDate)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of movies matching the filters plus the total match
// count.
func (s *Store) List(ctx context.Context, f movies.Filters) ([]*movies.Movie, int64, error) {
	where, args := buildMovieFilters(f)

	var total int64
	countQuery := "SELECT COUNT(*) FROM movies" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM movies%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		movieColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var result []*movies.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan movie: %w", err)
		}
		result = append(result, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating movies: %w", err)
	}

	return result, total, nil
}

// Update applies the non-nil fields of input and returns the updated row.
func (s *Store) Update(ctx context.Context, id string, input movies.UpdateInput) (*movies.Movie, error) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.Duration != nil {
		set("duration", *input.Duration)
	}
	if input.ReleaseDate != nil {
		set("release_date", *input.ReleaseDate)
	}
	if input.ImageURL != nil {
		set("image_url", *input.ImageURL)
	}
	if input.Genre != nil {
		set("genre", *input.Genre)
	}
	if input.Director != nil {
		set("director", *input.Director)
	}
	if input.Cast != nil {
		set("cast_members", pq.Array(input.Cast))
	}
	if input.Rating != nil {
		set("rating", *input.Rating)
	}
	if input.Tagline != nil {
		set("tagline", *input.Tagline)
	}
	if input.TrailerURL != nil {
		set("trailer_url", *input.TrailerURL)
	}

	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), movieColumns)

	movie, err := scanMovie(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, movies.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return movie, nil
}

// Delete removes one movie.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return movies.ErrNotFound
	}
	return nil
}

// ReleasedBetween returns movies with from <= release_date < to, used by the
// daily reminder sweep.
func (s *Store) ReleasedBetween(ctx context.Context, from, to time.Time) ([]*movies.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE release_date >= $1 AND release_date < $2 ORDER BY release_date`, movieColumns)

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query released movies: %w", err)
	}
	defer rows.Close()

	var result []*movies.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		result = append(result, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return result, nil
}

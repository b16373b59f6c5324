package movies

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a movie id does not resolve.
var ErrNotFound = errors.New("movie not found")

// Movie is one catalog entry, owned exclusively by the user who created it.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Duration    int       `json:"duration"`
	ReleaseDate time.Time `json:"releaseDate"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Director    *string   `json:"director,omitempty"`
	Cast        []string  `json:"cast"`
	Rating      *float64  `json:"rating,omitempty"`
	Tagline     *string   `json:"tagline,omitempty"`
	TrailerURL  *string   `json:"trailerUrl,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput is the payload for creating a movie.
type CreateInput struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Duration    int       `json:"duration"`
	ReleaseDate time.Time `json:"releaseDate"`
	ImageURL    *string   `json:"imageUrl"`
	Genre       *string   `json:"genre"`
	Director    *string   `json:"director"`
	Cast        []string  `json:"cast"`
	Rating      *float64  `json:"rating"`
	Tagline     *string   `json:"tagline"`
	TrailerURL  *string   `json:"trailerUrl"`
}

// UpdateInput is the partial-update payload; nil fields are left untouched.
type UpdateInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Duration    *int       `json:"duration"`
	ReleaseDate *time.Time `json:"releaseDate"`
	ImageURL    *string    `json:"imageUrl"`
	Genre       *string    `json:"genre"`
	Director    *string    `json:"director"`
	Cast        []string   `json:"cast"`
	Rating      *float64   `json:"rating"`
	Tagline     *string    `json:"tagline"`
	TrailerURL  *string    `json:"trailerUrl"`
}

// Filters narrows and pages the list endpoint. Page is 1-indexed.
type Filters struct {
	Title       string
	Genre       string
	Director    string
	MinDuration *int
	MaxDuration *int
	MinRating   *float64
	MaxRating   *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Normalize clamps page and limit into their allowed ranges.
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// Offset converts the 1-indexed page into a row offset.
func (f *Filters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PaginatedMovies is the list endpoint response body.
type PaginatedMovies struct {
	Movies     []*Movie   `json:"movies"`
	Pagination Pagination `json:"pagination"`
}

// Store persists catalog entries.
type Store interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id string) (*Movie, error)
	List(ctx context.Context, filters Filters) ([]*Movie, int64, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Movie, error)
	Delete(ctx context.Context, id string) error
	// ReleasedBetween returns movies with from <= releaseDate < to.
	ReleasedBetween(ctx context.Context, from, to time.Time) ([]*Movie, error)
}

// Notifier dispatches fire-and-forget catalog notifications.
type Notifier interface {
	MovieAdded(ctx context.Context, movie *Movie, ownerID string)
}

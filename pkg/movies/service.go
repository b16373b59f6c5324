package movies

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

// IsOwner reports whether the caller created the resource.
func IsOwner(resourceOwnerID, callerID string) bool {
	return resourceOwnerID == callerID
}

// Service implements catalog operations over a Store.
type Service struct {
	store    Store
	notifier Notifier
}

// NewService creates the movie service. notifier may be nil to disable
// notification emails.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Create inserts a new catalog entry owned by userID.
func (s *Service) Create(ctx context.Context, input CreateInput, userID string) (*Movie, error) {
	now := time.Now().UTC()
	movie := &Movie{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		ReleaseDate: input.ReleaseDate,
		ImageURL:    input.ImageURL,
		Genre:       input.Genre,
		Director:    input.Director,
		Cast:        input.Cast,
		Rating:      input.Rating,
		Tagline:     input.Tagline,
		TrailerURL:  input.TrailerURL,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, movie); err != nil {
		return nil, apperrors.Internal("failed to create movie")
	}

	if s.notifier != nil {
		s.notifier.MovieAdded(ctx, movie, userID)
	}

	return movie, nil
}

// GetByID returns one movie.
func (s *Service) GetByID(ctx context.Context, id string) (*Movie, error) {
	movie, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("movie not found")
		}
		return nil, apperrors.Internal("failed to look up movie")
	}
	return movie, nil
}

// Update mutates a movie after the existence and ownership checks. Existence
// is checked first: missing movies report 404 to every caller, 403 only once
// existence is confirmed.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput, callerID string) (*Movie, error) {
	movie, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("movie not found")
		}
		return nil, apperrors.Internal("failed to look up movie")
	}

	if !IsOwner(movie.UserID, callerID) {
		return nil, apperrors.Forbidden("only the creator of the movie can edit it")
	}

	updated, err := s.store.Update(ctx, id, input)
	if err != nil {
		return nil, apperrors.Internal("failed to update movie")
	}
	return updated, nil
}

// Delete removes a movie after the existence and ownership checks.
func (s *Service) Delete(ctx context.Context, id string, callerID string) error {
	movie, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("movie not found")
		}
		return apperrors.Internal("failed to look up movie")
	}

	if !IsOwner(movie.UserID, callerID) {
		return apperrors.Forbidden("only the creator of the movie can delete it")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete movie")
	}
	return nil
}

// List returns one page of movies matching the filters.
func (s *Service) List(ctx context.Context, filters Filters) (*PaginatedMovies, error) {
	filters.Normalize()

	items, total, err := s.store.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal("failed to list movies")
	}
	if items == nil {
		items = []*Movie{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(filters.Limit)))

	return &PaginatedMovies{
		Movies: items,
		Pagination: Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    filters.Page < totalPages,
			HasPrev:    filters.Page > 1,
		},
	}, nil
}

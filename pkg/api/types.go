package api

import (
	"context"
	"io"

	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/movies"
)

// AuthService is the slice of the auth domain the handlers call.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*auth.Result, error)
	Login(ctx context.Context, email, password string) (*auth.Result, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.Result, error)
	GetMe(ctx context.Context, userID string) (*auth.PublicUser, error)
	Logout(ctx context.Context, refreshToken string) error
}

// MovieService is the slice of the movie domain the handlers call.
type MovieService interface {
	Create(ctx context.Context, input movies.CreateInput, userID string) (*movies.Movie, error)
	GetByID(ctx context.Context, id string) (*movies.Movie, error)
	Update(ctx context.Context, id string, input movies.UpdateInput, callerID string) (*movies.Movie, error)
	Delete(ctx context.Context, id string, callerID string) error
	List(ctx context.Context, filters movies.Filters) (*movies.PaginatedMovies, error)
}

// UploadService stores validated poster images.
type UploadService interface {
	Upload(ctx context.Context, content io.Reader, contentType string, size int64) (string, error)
}

// TestMailer sends the email delivery check. Returns the subject used.
type TestMailer interface {
	SendTest(ctx context.Context, to, name string) (string, error)
}

// SweepRunner triggers the release-reminder sweep on demand.
type SweepRunner interface {
	RunSweep(ctx context.Context) error
}

// WelcomeSender re-sends the welcome email.
type WelcomeSender interface {
	WelcomeUser(ctx context.Context, user auth.PublicUser)
}

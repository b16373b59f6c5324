package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

// Messages reused across login failure paths. Unknown-email and bad-password
// must be indistinguishable to the caller.
const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidRefresh     = "invalid or expired refresh token"
)

// Service orchestrates the session lifecycle over the user and session stores.
type Service struct {
	users    UserStore
	sessions SessionStore
	codec    *Codec
	notifier Notifier
}

// NewService creates the auth service. notifier may be nil to disable
// notification emails.
func NewService(users UserStore, sessions SessionStore, codec *Codec, notifier Notifier) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		codec:    codec,
		notifier: notifier,
	}
}

// issuePair signs an access/refresh pair for the user and persists the
// refresh session.
func (s *Service) issuePair(ctx context.Context, user *User) (TokenPair, error) {
	accessToken, err := s.codec.Sign(KindAccess, user.ID, user.Email)
	if err != nil {
		return TokenPair{}, apperrors.Internal("failed to issue tokens")
	}

	refreshToken, err := s.codec.Sign(KindRefresh, user.ID, user.Email)
	if err != nil {
		return TokenPair{}, apperrors.Internal("failed to issue tokens")
	}

	if err := s.sessions.Put(ctx, user.ID, refreshToken, s.codec.RefreshExpiry()); err != nil {
		return TokenPair{}, apperrors.Internal("failed to persist session")
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a new user and returns their first session.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Result, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("email already in use")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.Internal("failed to check email")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password")
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperrors.Conflict("email already in use")
		}
		return nil, apperrors.Internal("failed to create user")
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.WelcomeUser(ctx, user.Public())
	}

	return &Result{User: user.Public(), Tokens: tokens}, nil
}

// Login authenticates a user and replaces every prior session with exactly
// one fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperrors.Internal("failed to look up user")
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	// Invalidate all prior sessions before issuing the replacement. Two
	// concurrent logins may interleave here and both survive; that narrow
	// race is accepted rather than serialized.
	if err := s.sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, apperrors.Internal("failed to invalidate sessions")
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Result{User: user.Public(), Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a fresh pair, consuming the presented
// token. Rotation bounds the blast radius of a leaked refresh token to one
// use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	claims, err := s.codec.Verify(KindRefresh, refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidRefresh)
	}

	session, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		// Absent, revoked, or a storage failure: all collapse into the
		// same generic 401 so callers learn nothing about the cause.
		return nil, apperrors.Unauthorized(msgInvalidRefresh)
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Unauthorized(msgInvalidRefresh)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to look up user")
	}

	if err := s.sessions.DeleteOne(ctx, refreshToken); err != nil {
		return nil, apperrors.Internal("failed to rotate session")
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Result{User: user.Public(), Tokens: tokens}, nil
}

// GetMe returns the public view of the authenticated user.
func (s *Service) GetMe(ctx context.Context, userID string) (*PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to look up user")
	}

	public := user.Public()
	return &public, nil
}

// Logout deletes the presented session. Idempotent: an already-invalid token
// is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.sessions.DeleteOne(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		// Best effort; the caller never sees a logout failure.
		return nil
	}
	return nil
}

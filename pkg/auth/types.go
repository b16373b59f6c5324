package auth

import (
	"context"
	"errors"
	"time"
)

// User is the identity record. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the externally visible view of a user.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RefreshSession is one persisted refresh token row. The token string is the
// primary lookup key.
type RefreshSession struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is an access/refresh token pair returned by auth operations.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Result is the response of register/login/refresh: the public user view plus
// a fresh token pair.
type Result struct {
	User   PublicUser `json:"user"`
	Tokens TokenPair  `json:"tokens"`
}

// Store errors returned by the persistence implementations.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrSessionNotFound = errors.New("session not found")
)

// UserStore persists identity records.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// SessionStore persists issued refresh tokens keyed by token string.
type SessionStore interface {
	Put(ctx context.Context, userID, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*RefreshSession, error)
	// DeleteOne is idempotent: deleting a nonexistent token is not an error.
	DeleteOne(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// Notifier dispatches fire-and-forget user notifications. Implementations
// must never block the caller or propagate failures.
type Notifier interface {
	WelcomeUser(ctx context.Context, user PublicUser)
}

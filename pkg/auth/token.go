package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects which signing context a token belongs to.
type TokenKind int

const (
	// KindAccess is the short-lived bearer credential for API calls.
	KindAccess TokenKind = iota
	// KindRefresh is the longer-lived credential exchanged for a new pair.
	KindRefresh
)

func (k TokenKind) String() string {
	if k == KindRefresh {
		return "refresh"
	}
	return "access"
}

// ErrInvalidToken is returned for any verification failure: bad signature,
// malformed token, expiry, or a token signed under the other kind's secret.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by both token kinds.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access and refresh tokens. The two kinds use
// independent secrets so one can never be accepted in place of the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec creates a token codec. Both secrets are required.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token codec requires both access and refresh secrets")
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (c *Codec) secretFor(kind TokenKind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *Codec) ttlFor(kind TokenKind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Sign produces a signed, time-bounded token of the given kind. Every token
// carries a unique jti so two issuances for the same user are never the same
// string; rotation depends on the replacement differing from the consumed
// token.
func (c *Codec) Sign(kind TokenKind, userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttlFor(kind))),
		},
	})

	signed, err := token.SignedString(c.secretFor(kind))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify parses and validates a token of the given kind, returning its
// claims. Every failure mode collapses into ErrInvalidToken.
func (c *Codec) Verify(kind TokenKind, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secretFor(kind), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshExpiry returns the absolute expiry for a refresh session issued now.
func (c *Codec) RefreshExpiry() time.Time {
	return time.Now().Add(c.refreshTTL)
}

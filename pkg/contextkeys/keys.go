// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// AuthKey contains *auth.Claims for the authenticated caller
	// Set by: middleware.AuthMiddleware (pkg/middleware/auth.go)
	// Required by: all bearer-protected endpoints
	AuthKey Key = "auth_claims"

	// UserIDKey contains the authenticated user id string
	// Set by: middleware.AuthMiddleware
	// Used by: logger, ownership checks
	UserIDKey Key = "user_id"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: api request middleware
	// Used by: logger
	RequestIDKey Key = "request_id"
)

// WithAuth adds the authenticated caller's claims to the context
func WithAuth(ctx context.Context, claims interface{}) context.Context {
	return context.WithValue(ctx, AuthKey, claims)
}

// WithUserID adds the authenticated user id to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithRequestID adds the request id to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetUserID retrieves the authenticated user id from the context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetRequestID retrieves the request id from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/contextkeys"
	"github.com/cinevault/cinevault/pkg/httputil"
)

// AuthMiddleware guards routes behind a valid access token.
type AuthMiddleware struct {
	codec *auth.Codec
}

func NewAuthMiddleware(codec *auth.Codec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// Handler verifies the Bearer access token and injects the caller's claims
// and user id into the request context. Every failure mode gets the same
// generic message so callers cannot probe token state.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Format: "Bearer <token>"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.codec.Verify(auth.KindAccess, parts[1])
		if err != nil {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := contextkeys.WithAuth(r.Context(), claims)
		ctx = contextkeys.WithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the verified claims from a request passed through the
// auth middleware. Returns nil on unauthenticated requests.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(contextkeys.AuthKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/config"
	"github.com/cinevault/cinevault/pkg/observability"
)

func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.RedisConfig{
		RequestsPerWindow: limit,
		WindowDuration:    time.Minute,
	}
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	return NewRateLimiter(client, cfg, logger), mr
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	handler := limiter.Handler(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)
	handler := limiter.Handler(okHandler())

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRateLimiterKeysClientsSeparately(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	handler := limiter.Handler(okHandler())

	reqFrom := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, reqFrom("10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, reqFrom("10.0.0.1").Code)
	// A different client has its own window.
	assert.Equal(t, http.StatusOK, reqFrom("10.0.0.2").Code)
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	handler := limiter.Handler(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	mr.FastForward(2 * time.Minute)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterFailsOpenOnRedisError(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	handler := limiter.Handler(okHandler())

	mr.Close()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

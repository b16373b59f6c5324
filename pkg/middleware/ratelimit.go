package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"

	"github.com/cinevault/cinevault/pkg/config"
	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/observability"
)

// RateLimiter implements a fixed-window limiter over Redis so the limit is
// shared across instances.
type RateLimiter struct {
	redis  *redis.Client
	cfg    config.RedisConfig
	prefix string
	logger *observability.Logger
}

func NewRateLimiter(redisClient *redis.Client, cfg config.RedisConfig, logger *observability.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		cfg:    cfg,
		prefix: "ratelimit",
		logger: logger,
	}
}

// Allow counts one request against the caller's window. On Redis errors it
// fails open: a degraded limiter must not take the API down with it.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.prefix, key)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.cfg.WindowDuration)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("redis error: %w", err)
	}

	return incr.Val() <= int64(rl.cfg.RequestsPerWindow), nil
}

// Handler wraps an HTTP handler with rate limiting. The limiter sits ahead
// of authentication in the middleware chain, so callers are keyed by client
// IP.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		key := "ip:" + getClientIP(r)

		allowed, err := rl.Allow(ctx, key)
		if err != nil {
			rl.logger.WithError(err).Warn("rate limiter degraded, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.cfg.WindowDuration.Seconds()))
			httputil.WriteTooManyRequests(w, "too many requests, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HealthCheck verifies Redis connectivity.
func (rl *RateLimiter) HealthCheck(ctx context.Context) error {
	return rl.redis.Ping(ctx).Err()
}

func getClientIP(r *http.Request) string {
	// Behind a proxy the original client comes in via headers.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

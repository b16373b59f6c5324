// Package middleware provides the HTTP request gates: bearer-token
// authentication, redis-backed rate limiting, and request identification.
package middleware

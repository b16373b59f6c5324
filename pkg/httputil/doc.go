// Package httputil provides HTTP handler utilities for the uniform response
// envelope, error rendering, and request parsing.
package httputil

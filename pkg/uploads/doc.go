// Package uploads validates and stores movie poster images.
package uploads

// Package auth implements the authentication lifecycle: credential hashing,
// the access/refresh token codec, and the session service orchestrating
// registration, login, refresh rotation, and logout.
package auth

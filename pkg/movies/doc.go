// Package movies implements the movie catalog: CRUD with ownership checks,
// filtered listing, and pagination.
package movies

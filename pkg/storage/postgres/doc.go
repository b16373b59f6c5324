// Package postgres implements the user, session, and movie stores on
// PostgreSQL using database/sql with the lib/pq driver. Schema migrations are
// embedded and applied with goose at startup.
package postgres

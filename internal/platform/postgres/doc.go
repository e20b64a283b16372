// Package postgres provides PostgreSQL implementations of the store
// interfaces, backed by database/sql over the pgx driver. Backend errors
// are mapped to the store sentinel errors so callers never depend on
// driver-specific error types.
package postgres

// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces, used when a database URL is configured.
package postgres

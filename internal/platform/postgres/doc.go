// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, mapping between domain entities and rows, translation of
// PostgreSQL errors into store errors, and the embedded schema migrations.
package postgres

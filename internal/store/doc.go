// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations report failures with the
// sentinel errors in this package so callers can classify them with KindOf.
package store

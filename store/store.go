// Package store is the persistence layer: a Mongo-backed user store and
// registration ledger, and the in-memory seeded event catalog.
package store

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a write would violate the unique
	// email constraint on users.
	ErrDuplicateEmail = errors.New("email already registered")
)

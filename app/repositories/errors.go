// Package repositories is the MongoDB persistence layer. Each repository
// wraps one collection and returns the sentinel errors below so services
// can branch without knowing driver error types.
package repositories

import "errors"

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("repositories: not found")

	// ErrDuplicate is returned when a unique index rejects a write
	// (duplicate email, duplicate review, bookingId collision).
	ErrDuplicate = errors.New("repositories: duplicate key")
)

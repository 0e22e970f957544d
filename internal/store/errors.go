package store

import "errors"

// Common errors returned by store implementations.
var (
	// ErrSaveFailed is returned when the history could not be persisted.
	ErrSaveFailed = errors.New("failed to save history")
)

package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the store rejects a write on an integrity constraint
	ErrConflict = errors.New("integrity violation")
)

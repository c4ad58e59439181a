package errors

import "errors"

var (
	ErrNotFound = errors.New("flight not found")

	ErrInvalidID = errors.New("invalid flight ID format")

	// ErrDuplicateKey is returned when the unique flight number index rejects
	// a write that the validator's earlier lookup could not see.
	ErrDuplicateKey = errors.New("flight number already exists")
)

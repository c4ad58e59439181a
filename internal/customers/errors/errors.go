package errors

import "errors"

var (
	ErrNotFound = errors.New("customer not found")

	ErrInvalidID = errors.New("invalid customer ID format")

	// ErrDuplicateKey is returned when the unique email index rejects a write
	// that the validator's earlier lookup could not see.
	ErrDuplicateKey = errors.New("customer email already exists")
)

package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicateKey is returned when the unique (flight, booking date)
	// index rejects a write that the validator's earlier lookup could not see.
	ErrDuplicateKey = errors.New("booking for this flight and date already exists")
)

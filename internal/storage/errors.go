package storage

import "errors"

// Storage errors shared by all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a unique column (mint address,
	// transfer signature) already holds the inserted value. Only stores
	// backed by a database with the declared constraints return it.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownToken is returned when a transfer references a token id
	// that does not exist and the backend enforces the foreign key.
	ErrUnknownToken = errors.New("unknown token")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

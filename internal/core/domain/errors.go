package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusUnavailable indicates the corpus could not be loaded.
	// Search degrades to an empty result when it sees this.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrConfiguration indicates required configuration is missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnauthorized indicates a request failed the password gate.
	ErrUnauthorized = errors.New("unauthorized")
)

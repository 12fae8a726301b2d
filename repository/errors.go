package repository

import "errors"

// Sentinel errors surfaced to services and handlers via errors.Is.
var (
	// ErrNotFound covers missing records and records outside the
	// caller's organization; the two are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrEmailExists signals an (organization, email) or login-email
	// uniqueness violation.
	ErrEmailExists = errors.New("email already exists")

	// ErrAlreadySubmitted signals a second submit on a consumed
	// project-request token.
	ErrAlreadySubmitted = errors.New("request already submitted")
)

package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the controllers.
var (
	// ErrInvalidCredentials is returned for a wrong password and for an
	// unknown email alike, so login failures do not reveal which one it
	// was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoLoginAccess means the email matched a roster entry that has
	// no password credential. This case is deliberately disclosed.
	ErrNoLoginAccess = errors.New("this account does not have login access")

	// ErrEmailTaken is returned on registration when the email already
	// holds a login identity.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRefreshToken covers missing, expired and tampered
	// refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidDeadline is returned when a deadline string does not
	// parse as a date.
	ErrInvalidDeadline = errors.New("invalid deadline format")

	// ErrMissingRequiredFields is returned when a client form submit
	// lacks the project name or the deadline.
	ErrMissingRequiredFields = errors.New("project name and deadline are required")
)

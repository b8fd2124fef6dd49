// Package services holds the application core: authentication flows,
// engagement toggles, comments, and the food catalog. Services are
// constructed with their dependencies and speak the storage.Store
// contract; controllers translate service errors to HTTP.
package services

import "errors"

var (
	// ErrValidation wraps any missing or malformed input. Controllers map
	// it to 400; the wrapped message is safe to show to clients.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken signals a duplicate registration for a principal kind.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password
	// so responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMediaUnconfigured means a media file was attached but no object
	// storage backend is configured.
	ErrMediaUnconfigured = errors.New("media storage is not configured")
)

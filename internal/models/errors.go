package models

import "errors"

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email format")

	// ErrBackendUnavailable marks transport-level failures against the
	// identity backend, as opposed to a rejection it actually returned.
	ErrBackendUnavailable = errors.New("identity backend unavailable")

	ErrUnauthorized = errors.New("unauthorized")
)

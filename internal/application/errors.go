package application

import "errors"

// Failure taxonomy surfaced to handlers. Handlers translate these to HTTP
// status codes; anything else is an internal error (logged in full, returned
// generically).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateIdentity  = errors.New("username or email already in use")
	// ErrNotFound covers both absent resources and malformed ids, so a probe
	// cannot learn whether an id exists.
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("not authorized for this resource")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
)

package services

import "errors"

var (
	// ErrInvalidRole means role validation rejected the input. User-correctable.
	ErrInvalidRole = errors.New("role does not appear to be a valid job title")

	// ErrSessionNotFound means the referenced identifier has no live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession means a session with the same identifier already exists.
	ErrDuplicateSession = errors.New("session already exists")

	// ErrModelGateway wraps any failure of the external model call.
	ErrModelGateway = errors.New("model gateway error")
)

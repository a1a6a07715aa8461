package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrStampNotFound      = errors.New("stamp not found")
	ErrNotOwner           = errors.New("not authorized to access this stamp")
)

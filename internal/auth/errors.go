package auth

import "errors"

var (
	ErrNotFound = errors.New("account not found")
	ErrConflict = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so that login failures do not enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrTokenInvalid = errors.New("invalid token")
	ErrForbidden    = errors.New("operation not permitted")
)

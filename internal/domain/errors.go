package domain

import "errors"

var (
	// ErrDuplicateUser maps to a 400 at the API boundary.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both "no such user" and "wrong password",
	// so the response shape does not leak which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

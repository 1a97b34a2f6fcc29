package auth

import "errors"

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("service: internal error")
)

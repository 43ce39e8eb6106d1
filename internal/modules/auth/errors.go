package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrInvalidRole          = errors.New("user type must be customer or business")
	ErrUsernameAlreadyTaken = errors.New("username already exists")
	ErrEmailAlreadyExists   = errors.New("email already exists")
)

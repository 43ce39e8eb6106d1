package order

import "errors"

var (
	ErrNotFound             = errors.New("order not found")
	ErrDetailNotFound       = errors.New("offer detail not found")
	ErrForbidden            = errors.New("not a participant of this order")
	ErrNotBusinessSide      = errors.New("only the business participant can change the status")
	ErrInvalidStatus        = errors.New("status must be in_progress, completed or cancelled")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrBusinessUserNotFound = errors.New("business user not found")
)

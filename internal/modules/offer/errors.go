package offer

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("offer not found")
	ErrDetailNotFound  = errors.New("offer detail not found")
	ErrForbidden       = errors.New("not the offer owner")
	ErrInvalidTier     = errors.New("offer_type must be basic, standard or premium")
	ErrDuplicateTier   = errors.New("each offer_type may appear only once")
	ErrUnknownDetail   = errors.New("detail does not belong to this offer")
	ErrMissingTier     = errors.New("offer_type is required to identify the detail")
	ErrNotBusinessUser = errors.New("only business users can create offers")
)

// DetailCountError names the actual count so the client sees what was sent.
type DetailCountError struct {
	Got int
}

func (e *DetailCountError) Error() string {
	return fmt.Sprintf("an offer must contain exactly 3 details, got %d", e.Got)
}

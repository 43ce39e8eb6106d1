package review

import "errors"

var (
	ErrNotFound          = errors.New("review not found")
	ErrForbidden         = errors.New("not the review author")
	ErrConflict          = errors.New("you have already reviewed this offer")
	ErrOfferRequired     = errors.New("offer or business_user must be provided")
	ErrOfferNotFound     = errors.New("offer not found")
	ErrNoOfferForUser    = errors.New("no offer found for this business user")
	ErrAmbiguousBusiness = errors.New("business user has several offers, pass an explicit offer id")
)

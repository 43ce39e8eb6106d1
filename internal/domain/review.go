package domain

import "time"

// Review is one rating per (offer, reviewer) pair. The composite unique index
// is the actual enforcement point; application-level existence checks only
// produce a friendlier error.
type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OfferID     int64     `json:"offer" gorm:"uniqueIndex:idx_reviews_offer_reviewer"`
	ReviewerID  int64     `json:"reviewer" gorm:"uniqueIndex:idx_reviews_offer_reviewer"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package domain

import "time"

type OfferType string

const (
	TierBasic    OfferType = "basic"
	TierStandard OfferType = "standard"
	TierPremium  OfferType = "premium"
)

func (t OfferType) Valid() bool {
	return t == TierBasic || t == TierStandard || t == TierPremium
}

// Offer is a service listing owned by a business user, always carrying
// exactly three tiered details.
type Offer struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	UserID      int64         `json:"user" gorm:"index"`
	Title       string        `json:"title" gorm:"size:200"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Details     []OfferDetail `json:"-" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// MinPrice is the lowest detail price, 0 when no details are loaded.
func (o *Offer) MinPrice() float64 {
	if len(o.Details) == 0 {
		return 0
	}
	min := o.Details[0].Price
	for _, d := range o.Details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}
	return min
}

// MinDeliveryTime is the shortest delivery time across details, 0 when none.
func (o *Offer) MinDeliveryTime() int {
	if len(o.Details) == 0 {
		return 0
	}
	min := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return min
}

type OfferDetail struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	OfferID            int64     `json:"-" gorm:"index"`
	Title              string    `json:"title" gorm:"size:200"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features" gorm:"serializer:json"`
	OfferType          OfferType `json:"offer_type" gorm:"size:10"`
}

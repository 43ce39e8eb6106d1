package domain

import "time"

type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	return s == OrderInProgress || s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo guards the order lifecycle: an in-progress order may finish
// or be cancelled, terminal states never change again.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderInProgress && (next == OrderCompleted || next == OrderCancelled)
}

// Order is an immutable snapshot of an OfferDetail taken at purchase time.
// The copied fields are never re-derived from the source detail.
type Order struct {
	ID                 int64       `json:"id" gorm:"primaryKey"`
	CustomerUserID     int64       `json:"customer_user" gorm:"index"`
	BusinessUserID     int64       `json:"business_user" gorm:"index"`
	Title              string      `json:"title" gorm:"size:200"`
	Revisions          int         `json:"revisions"`
	DeliveryTimeInDays int         `json:"delivery_time_in_days"`
	Price              float64     `json:"price"`
	Features           []string    `json:"features" gorm:"serializer:json"`
	OfferType          OfferType   `json:"offer_type" gorm:"size:20"`
	Status             OrderStatus `json:"status" gorm:"size:20"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

package offer

import (
	"fmt"

	"servicemarket/internal/domain"
)

type DetailPayload struct {
	Title              string   `json:"title" binding:"required"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" binding:"required,gt=0"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type" binding:"required"`
}

type CreateOfferRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Image       string          `json:"image"`
	Description string          `json:"description" binding:"required"`
	Details     []DetailPayload `json:"details" binding:"required"`
}

// DetailUpdatePayload patches one detail. OfferType is always required as
// the discriminator; ID, when present, wins over tier lookup.
type DetailUpdatePayload struct {
	ID                 *int64    `json:"id,omitempty"`
	Title              *string   `json:"title,omitempty"`
	Revisions          *int      `json:"revisions,omitempty"`
	DeliveryTimeInDays *int      `json:"delivery_time_in_days,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Features           *[]string `json:"features,omitempty"`
	OfferType          string    `json:"offer_type" binding:"required"`
}

type UpdateOfferRequest struct {
	Title       *string               `json:"title,omitempty"`
	Image       *string               `json:"image,omitempty"`
	Description *string               `json:"description,omitempty"`
	Details     []DetailUpdatePayload `json:"details,omitempty"`
}

type ListQuery struct {
	Search          string  `form:"search"`
	CreatorID       int64   `form:"creator_id"`
	MinPrice        float64 `form:"min_price"`
	MaxDeliveryTime int     `form:"max_delivery_time"`
	Ordering        string  `form:"ordering"`
	Limit           int     `form:"limit"`
	Offset          int     `form:"offset"`
}

type DetailResponse struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

// DetailLocator is the list-view shape: id plus the detail resource URL.
type DetailLocator struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type OwnerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type ListItem struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	Details         []DetailLocator `json:"details"`
	MinPrice        float64         `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
	UserDetails     *OwnerDetails   `json:"user_details"`
}

type RetrieveResponse struct {
	ID              int64            `json:"id"`
	User            int64            `json:"user"`
	Title           string           `json:"title"`
	Image           string           `json:"image"`
	Description     string           `json:"description"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
	Details         []DetailResponse `json:"details"`
	MinPrice        float64          `json:"min_price"`
	MinDeliveryTime int              `json:"min_delivery_time"`
}

type ListResponse struct {
	Count   int64      `json:"count"`
	Results []ListItem `json:"results"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func toDetailResponse(d domain.OfferDetail) DetailResponse {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return DetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          string(d.OfferType),
	}
}

func toRetrieveResponse(o *domain.Offer) *RetrieveResponse {
	details := make([]DetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, toDetailResponse(d))
	}
	return &RetrieveResponse{
		ID:              o.ID,
		User:            o.UserID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt.Format(timeLayout),
		UpdatedAt:       o.UpdatedAt.Format(timeLayout),
		Details:         details,
		MinPrice:        o.MinPrice(),
		MinDeliveryTime: o.MinDeliveryTime(),
	}
}

func toListItem(o domain.Offer, owner *OwnerDetails) ListItem {
	locators := make([]DetailLocator, 0, len(o.Details))
	for _, d := range o.Details {
		locators = append(locators, DetailLocator{
			ID:  d.ID,
			URL: fmt.Sprintf("/api/offerdetails/%d", d.ID),
		})
	}
	return ListItem{
		ID:              o.ID,
		User:            o.UserID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt.Format(timeLayout),
		UpdatedAt:       o.UpdatedAt.Format(timeLayout),
		Details:         locators,
		MinPrice:        o.MinPrice(),
		MinDeliveryTime: o.MinDeliveryTime(),
		UserDetails:     owner,
	}
}

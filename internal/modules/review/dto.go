package review

type CreateReviewRequest struct {
	Offer        int64  `json:"offer"`
	BusinessUser int64  `json:"business_user"`
	Rating       int    `json:"rating" binding:"required,gte=1,lte=5"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating,omitempty" binding:"omitempty,gte=1,lte=5"`
	Description *string `json:"description,omitempty"`
}

type ListQuery struct {
	Offer        int64  `form:"offer"`
	BusinessUser int64  `form:"business_user"`
	ReviewerID   int64  `form:"reviewer_id"`
	Ordering     string `form:"ordering"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

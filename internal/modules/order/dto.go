package order

type CreateOrderRequest struct {
	OfferDetailID int64 `json:"offer_detail_id" binding:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

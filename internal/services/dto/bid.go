package dto

import "gigmarket_backend/internal/models"

// ---------------- Requests ----------------

type CreateBidRequest struct {
	GigID   string  `json:"gigId" validate:"required,uuid4"`
	Message string  `json:"message" validate:"required,max=1000"`
	Price   float64 `json:"price" validate:"required,gt=0"`
}

type BidListQuery struct {
	// newest (default) | price_asc | price_desc; the price orderings put
	// pending bids ahead of resolved ones.
	Order string `form:"order" validate:"omitempty,oneof=newest price_asc price_desc"`
}

// ---------------- Responses ----------------

type BidListResponse struct {
	Bids  []models.Bid `json:"bids"`
	Total int          `json:"total"`
}

// MyBidItem decorates a bid with the pending-bid count of its gig, so a
// freelancer can see how crowded each listing is.
type MyBidItem struct {
	models.Bid
	TotalBids int64 `json:"totalBids"`
}

type MyBidsResponse struct {
	Bids  []MyBidItem `json:"bids"`
	Total int         `json:"total"`
}

type BidCountResponse struct {
	Count int64 `json:"count"`
}

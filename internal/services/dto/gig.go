package dto

import "gigmarket_backend/internal/models"

// ---------------- Requests ----------------

type CreateGigRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=2000"`
	Budget      float64 `json:"budget" validate:"required,gt=0"`
}

type GigListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ---------------- Responses ----------------

type GigListResponse struct {
	Items      []models.Gig `json:"items"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
}

type ViewResponse struct {
	GigID     string `json:"gigId"`
	ViewCount int64  `json:"viewCount"`
	Counted   bool   `json:"counted"`
}

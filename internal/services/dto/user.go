package dto

import "gigmarket_backend/internal/models"

// ---------------- Requests ----------------

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ---------------- Responses ----------------

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UserProfileResponse struct {
	User  models.User      `json:"user"`
	Stats models.UserStats `json:"stats"`
}

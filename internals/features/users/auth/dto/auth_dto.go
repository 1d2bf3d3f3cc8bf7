package dto

import (
	"time"

	"github.com/google/uuid"

	authmodel "schoolpay_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenResponse mirrors the token pair the dashboard login expects.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u authmodel.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.UserUsername,
		FullName:  u.UserFullName,
		Role:      u.UserRole,
		IsActive:  u.UserIsActive,
		CreatedAt: u.CreatedAt,
	}
}

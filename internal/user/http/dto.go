package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

// SignUpRequest is the payload for POST /users/sign-up.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=25"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by sign-up and login.
type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Authority string    `json:"authority"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Authority: u.Authority.String(),
		CreatedAt: u.CreatedAt,
	}
}

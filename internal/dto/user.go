package dto

import (
	"time"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
)

// CreateUserRequest defines the expected JSON body for registering a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse defines the JSON representation of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
	UpdatedTimestamp time.Time `json:"updatedTimestamp"`
}

// ToUserResponse converts a domain User to its API representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.UserID,
		Name:             user.Name,
		Email:            user.Email,
		CreatedTimestamp: user.CreatedAt,
		UpdatedTimestamp: user.UpdatedAt,
	}
}

package response

import (
	"time"

	"movie-favorites/internal/data/entity"
)

type UserResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.RegisteredAt,
	}
}

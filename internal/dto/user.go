package dto

import (
	"time"

	"github.com/foodbridge/donation-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	ID    uint64      `json:"id"`
	Role  models.Role `json:"role"`
	Token string      `json:"token"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToLoginResponse builds the login payload
func ToLoginResponse(user models.User, token string) LoginResponse {
	return LoginResponse{
		ID:    user.ID,
		Role:  user.Role,
		Token: token,
		Name:  user.Name,
		Email: user.Email,
	}
}

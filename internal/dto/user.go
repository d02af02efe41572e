package dto

import (
	"time"

	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/validation"
)

// UserRequest is the body of POST /api/users and PUT /api/users/{id}
type UserRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

// Validate returns validation.Violations when a rule fails
func (r UserRequest) Validate() error {
	return validation.Validate(validation.UserRules, map[string]*string{
		"username": r.Username,
		"fullName": r.FullName,
		"email":    r.Email,
	}).Err()
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"userId"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Active:    user.IsActive(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// MessageResponse is returned by delete endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

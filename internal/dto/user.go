package dto

import "github.com/yukikurage/legal-case-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO. The password hash never leaves
// the service layer.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

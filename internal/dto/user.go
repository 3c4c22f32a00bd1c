package dto

import "github.com/clinicore/clinic-management-api/internal/models"

// UserDTO is the wire representation of a user.
type UserDTO struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}

// ToUserDTO converts a user model to its wire representation
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	}
}

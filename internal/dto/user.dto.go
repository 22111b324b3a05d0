package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type UserDTO struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              *string   `json:"email"`
	Phone              string    `json:"phone"`
	Role               string    `json:"role"`
	Status             string    `json:"status"`
	AvailabilityStatus string    `json:"availability_status,omitempty"`
	LoyaltyPoints      int       `json:"loyalty_points"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	out := UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		LoyaltyPoints: u.LoyaltyPoints,
		CreatedAt:     u.CreatedAt,
	}
	// Availability only means something for barbers.
	if u.Role == models.RoleBarber {
		out.AvailabilityStatus = u.AvailabilityStatus
	}
	return out
}

func NewUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserDTO(&users[i]))
	}
	return out
}

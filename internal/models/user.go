package models

import "time"

const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleBarber       = "barber"
	RoleCustomer     = "customer"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"

	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        *string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone        string  `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	Role         string  `gorm:"size:20;default:'customer';index" json:"role"`

	Status             string `gorm:"size:20;default:'active'" json:"status"`
	AvailabilityStatus string `gorm:"size:20;default:'available'" json:"availability_status"`
	LoyaltyPoints      int    `gorm:"default:0" json:"loyalty_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStaff reports whether the user works at a branch.
func (u *User) IsStaff() bool {
	return IsStaffRole(u.Role)
}

func IsStaffRole(role string) bool {
	switch role {
	case RoleAdmin, RoleReceptionist, RoleBarber:
		return true
	}
	return false
}

package booking

import (
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsCustomer() bool {
	return a.Role == models.RoleCustomer
}

func (a Actor) IsStaff() bool {
	return models.IsStaffRole(a.Role)
}
